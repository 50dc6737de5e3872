package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rotisserie/eris"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiService implements Service against the Gemini API.
type GeminiService struct {
	client *genai.Client
}

// NewGeminiService creates a Gemini-backed completion service.
func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Name() string { return "gemini" }

// Close releases the underlying client.
func (s *GeminiService) Close() error { return s.client.Close() }

// ListModels returns the roster of models that support content generation.
func (s *GeminiService) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo

	it := s.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "gemini: list models")
		}

		supported := false
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}

		id := strings.TrimPrefix(m.Name, "models/")
		models = append(models, ModelInfo{
			Identifier: id,
			Vision:     geminiVisionCapable(id),
		})
	}

	return models, nil
}

// FallbackModels is the fixed minimal roster used when the roster query
// itself fails.
func (s *GeminiService) FallbackModels() []ModelInfo {
	return []ModelInfo{
		{Identifier: "gemini-1.5-flash", Vision: true},
		{Identifier: "gemini-1.5-pro", Vision: true},
	}
}

// geminiVisionCapable reports whether an identifier signals multimodal
// input support. 1.0-era text models and embedding models do not.
func geminiVisionCapable(id string) bool {
	if strings.Contains(id, "embedding") {
		return false
	}
	return strings.Contains(id, "1.5") ||
		strings.Contains(id, "2.") ||
		strings.Contains(id, "vision") ||
		strings.Contains(id, "flash")
}

// Generate runs one completion against the named model.
func (s *GeminiService) Generate(ctx context.Context, model string, req Request) (*Response, error) {
	gm := s.client.GenerativeModel(model)
	if req.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.Blob != nil {
		parts = append(parts, genai.Blob{
			MIMEType: req.Blob.MIMEType,
			Data:     req.Blob.Data,
		})
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, eris.Wrapf(err, "gemini: generate with %s", model)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, eris.Errorf("gemini: %s returned no candidates", model)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, eris.Errorf("gemini: %s returned empty text", model)
	}

	return &Response{Text: text, Model: model}, nil
}
