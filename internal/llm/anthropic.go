package llm

import (
	"context"
	"encoding/base64"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const anthropicDefaultMaxTokens = 4096

// AnthropicService implements Service against the Anthropic API.
type AnthropicService struct {
	client sdk.Client
}

// NewAnthropicService creates an Anthropic-backed completion service.
func NewAnthropicService(apiKey string) (*AnthropicService, error) {
	if apiKey == "" {
		return nil, eris.New("anthropic: api key is required")
	}

	return &AnthropicService{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

func (s *AnthropicService) Name() string { return "anthropic" }

// ListModels returns the current model roster. Claude models accept image
// input, so every candidate is vision-capable.
func (s *AnthropicService) ListModels(ctx context.Context) ([]ModelInfo, error) {
	page, err := s.client.Models.List(ctx, sdk.ModelListParams{})
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: list models")
	}

	models := make([]ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, ModelInfo{
			Identifier: string(m.ID),
			Vision:     true,
		})
	}

	return models, nil
}

// FallbackModels is the fixed minimal roster used when the roster query
// itself fails.
func (s *AnthropicService) FallbackModels() []ModelInfo {
	return []ModelInfo{
		{Identifier: "claude-haiku-4-5-20251001", Vision: true},
		{Identifier: "claude-sonnet-4-5-20250929", Vision: true},
	}
}

// Generate runs one completion against the named model.
func (s *AnthropicService) Generate(ctx context.Context, model string, req Request) (*Response, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	blocks := []sdk.ContentBlockParamUnion{}
	if req.Blob != nil {
		blocks = append(blocks, sdk.NewImageBlockBase64(
			req.Blob.MIMEType,
			base64.StdEncoding.EncodeToString(req.Blob.Data),
		))
	}
	blocks = append(blocks, sdk.NewTextBlock(req.Prompt))

	msg, err := s.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(blocks...)},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "anthropic: generate with %s", model)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, eris.Errorf("anthropic: %s returned empty text", model)
	}

	return &Response{Text: text, Model: model}, nil
}
