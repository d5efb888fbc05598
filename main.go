package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/soundbymood/server/internal/core"
	"github.com/soundbymood/server/internal/search/catalog"
	"github.com/soundbymood/server/internal/search/engine"
	"github.com/soundbymood/server/internal/search/gateway"
	"github.com/soundbymood/server/internal/search/model"
	"github.com/soundbymood/server/internal/search/refine"
	"github.com/soundbymood/server/internal/search/repo"
	"github.com/soundbymood/server/internal/search/service"
	logx "github.com/soundbymood/server/pkg/logger"
	pkgredis "github.com/soundbymood/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the search server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis       pkgredis.Config
	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/tracks.csv"`

	// LLM provider
	Gateway gateway.Config
	Gemini  model.GeminiConfig

	// Search behaviour
	Search model.SearchConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	env := core.ParseEnvironment(envCfg.Environment.String())
	logx.Init(logx.LoggerOpts{Environment: env})

	ttl, err := time.ParseDuration(envCfg.Search.JobTTL)
	if err != nil {
		log.Fatalf("Invalid SEARCH_JOB_TTL '%s': %v", envCfg.Search.JobTTL, err)
	}
	store := repo.NewStore(envCfg.Redis, ttl)

	cat, err := catalog.Load(envCfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load track catalog: %v", err)
	}
	holder := catalog.NewHolder(cat)
	logx.Info().Int("tracks", cat.Len()).Str("path", envCfg.CatalogPath).Msg("catalog loaded")

	gw, err := gateway.NewGemini(ctx, envCfg.Gateway, envCfg.Gemini, envCfg.Search)
	if err != nil {
		log.Fatalf("Failed to initialise Gemini gateway: %v", err)
	}

	eng := engine.New(model.DefaultFeatureConfig(), envCfg.Search)
	controller := refine.New(gw, eng, holder, envCfg.Search)

	svc, err := service.New(store, controller, eng, envCfg.Search, envCfg.Gemini.Model)
	if err != nil {
		log.Fatalf("Failed to build search service: %v", err)
	}

	query := "upbeat songs for a summer road trip"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	fmt.Printf("Query: %q\n", query)
	jobID, err := svc.StartConversation(ctx, query, nil)
	if err != nil {
		log.Fatalf("Failed to start conversation: %v", err)
	}
	fmt.Printf("Job: %s\n", jobID)

	job := waitForJob(ctx, svc, jobID)
	printOutcome(ctx, svc, jobID, job)
}

// waitForJob polls until the job leaves the running states.
func waitForJob(ctx context.Context, svc *service.Service, jobID string) *model.Job {
	for {
		job, err := svc.GetJob(ctx, jobID)
		if err != nil {
			log.Fatalf("Failed to poll job: %v", err)
		}
		if job.Status != model.JobQueued && job.Status != model.JobRunning {
			return job
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func printOutcome(ctx context.Context, svc *service.Service, jobID string, job *model.Job) {
	if job.Status != model.JobDone {
		log.Fatalf("Job finished with status %s: %s", job.Status, job.ErrorMessage)
	}

	for _, d := range svc.GetStepSummaries(job.Conversation) {
		fmt.Printf("  step %d [%s] count=%d target=%s\n", d.StepNumber, d.Kind, d.ResultCount, d.TargetRange)
	}

	results, err := svc.GetResults(ctx, jobID)
	if err != nil || results == nil {
		log.Fatalf("Failed to load results: %v", err)
	}

	fmt.Printf("\n%s\n\n", results.LLMMessage)
	for i, t := range results.Tracks {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(results.Tracks)-10)
			break
		}
		fmt.Printf("  %3d. %s - %s (%s)\n", t.RankPosition, t.Artist, t.Title, t.SpotifyURL)
	}
}
