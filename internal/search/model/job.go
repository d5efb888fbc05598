package model

import "time"

// JobStatus tracks a search job through its asynchronous lifecycle.
type JobStatus string

const (
	JobQueued   JobStatus = "queued"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobError    JobStatus = "error"
	JobCanceled JobStatus = "canceled"
)

// Job is the stored state of one search conversation across the async
// request lifecycle. It lives in the job store under a TTL; the API layer
// polls it by id.
type Job struct {
	Status         JobStatus          `json:"status"`
	QueryText      string             `json:"query_text"`
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     *time.Time         `json:"finished_at,omitempty"`
	ErrorMessage   string             `json:"error_message,omitempty"`
	Model          string             `json:"model,omitempty"`
	Conversation   *ConversationState `json:"conversation_history,omitempty"`
	CurrentFilters *FilterParameters  `json:"current_filters_json,omitempty"`
	ResultCount    *int               `json:"result_count,omitempty"`
}
