package model

import "context"

// HistoryTurn is one prior exchange replayed to the language model: the
// input that triggered a step and the user-facing message it produced.
type HistoryTurn struct {
	Input  string
	Output string
}

// ImageAttachment is an optional image accompanying a query, forwarded to
// the language model on the first call of a turn.
type ImageAttachment struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest carries one prompt to the gateway together with the
// rolling conversation history.
type GenerateRequest struct {
	Prompt  string
	Image   *ImageAttachment
	History []HistoryTurn
}

// Gateway is the external language model collaborator. One call per
// refinement iteration; it must fail fast and loudly when the response does
// not conform to the FilterParameters schema, never silently coerce.
type Gateway interface {
	Generate(ctx context.Context, req GenerateRequest) (*FilterParameters, error)
}
