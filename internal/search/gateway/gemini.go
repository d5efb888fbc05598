// Package gateway implements the language model collaborator behind the
// refinement loop: one structured-output Gemini call per iteration.
package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/soundbymood/server/internal/core/error"
	"github.com/soundbymood/server/internal/search/model"
	"github.com/soundbymood/server/internal/search/parsers"
	"github.com/soundbymood/server/internal/search/prompts"
	logx "github.com/soundbymood/server/pkg/logger"
)

// Config holds what the Gemini gateway needs beyond the shared model config.
type Config struct {
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`
}

// GeminiGateway converts prompts plus rolling history into one structured
// FilterParameters response per call.
type GeminiGateway struct {
	chat      einomodel.BaseChatModel
	system    string
	modelName string
}

// NewGemini builds the gateway: a genai client, a chat model pinned to the
// static filters response schema, and the rendered system instruction.
func NewGemini(ctx context.Context, cfg Config, mc model.GeminiConfig, sc model.SearchConfig) (*GeminiGateway, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:         client,
		Model:          mc.Model,
		Temperature:    &mc.Temperature,
		MaxTokens:      &mc.MaxTokens,
		ResponseSchema: filtersResponseSchema(),
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating filters model")
		return nil, fmt.Errorf("error creating filters model: %w", err)
	}

	return &GeminiGateway{
		chat:      chat,
		system:    prompts.SystemInstruction(sc),
		modelName: mc.Model,
	}, nil
}

// Generate performs one model call and validates the response against the
// FilterParameters contract. Any transport or schema failure surfaces as a
// gateway error, never as an empty result.
func (g *GeminiGateway) Generate(ctx context.Context, req model.GenerateRequest) (*model.FilterParameters, error) {
	out, err := g.chat.Generate(ctx, g.buildMessages(req))
	if err != nil {
		return nil, errx.WrapGateway(err)
	}
	if out == nil || out.Content == "" {
		return nil, errx.WrapGateway(fmt.Errorf("empty model response"))
	}

	g.logUsage(out)

	p, err := parsers.ParseFilters(out.Content)
	if err != nil {
		return nil, errx.WrapGateway(err)
	}
	return p, nil
}

func (g *GeminiGateway) buildMessages(req model.GenerateRequest) []*schema.Message {
	msgs := make([]*schema.Message, 0, 2+2*len(req.History))
	msgs = append(msgs, schema.SystemMessage(g.system))

	for _, turn := range req.History {
		if turn.Input != "" {
			msgs = append(msgs, schema.UserMessage(turn.Input))
		}
		if turn.Output != "" {
			msgs = append(msgs, schema.AssistantMessage(turn.Output, nil))
		}
	}

	if req.Image != nil {
		msgs = append(msgs, &schema.Message{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{Type: schema.ChatMessagePartTypeText, Text: req.Prompt},
				{
					Type: schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{
						URL:      dataURI(req.Image),
						MIMEType: req.Image.MIMEType,
					},
				},
			},
		})
		return msgs
	}

	msgs = append(msgs, schema.UserMessage(req.Prompt))
	return msgs
}

func (g *GeminiGateway) logUsage(out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(g.modelName))
	logx.Debug().
		Str("model", g.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

func dataURI(img *model.ImageAttachment) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

var _ model.Gateway = (*GeminiGateway)(nil)
