// Package ocr wraps the remote vision-capable completion chain used when an
// artifact has no native text extraction: images, scanned PDFs, and
// audio/video transcripts.
package ocr

import (
	"bytes"
	"context"
	"image/jpeg"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/image/tiff"

	"github.com/lexkit/case-cli/internal/llm"
)

// DefaultInstruction is the fixed transcription prompt used when the
// caller supplies none.
const DefaultInstruction = "Transcribe this file's content verbatim. Output only the transcribed text."

// Completer is the vision-capable fallback chain (satisfied by
// llm.Resolver).
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Client delegates transcription to the completion fallback chain.
type Client struct {
	completer Completer
}

// NewClient creates an OCR fallback client over the given chain.
func NewClient(completer Completer) *Client {
	return &Client{completer: completer}
}

// Extract transcribes payload via the vision fallback chain. Unsupported
// container mime types (TIFF) are normalized to JPEG before sending. The
// returned error marks a recoverable, reportable per-file condition, not a
// fatal one; callers surface it as a labeled failure value.
func (c *Client) Extract(ctx context.Context, payload []byte, mimeType, instruction string) (string, error) {
	if instruction == "" {
		instruction = DefaultInstruction
	}

	payload, mimeType, err := normalizePayload(payload, mimeType)
	if err != nil {
		return "", err
	}

	resp, err := c.completer.Complete(ctx, llm.Request{
		Prompt: instruction,
		Blob:   &llm.Blob{MIMEType: mimeType, Data: payload},
	})
	if err != nil {
		return "", eris.Wrap(err, "ocr: could not read file via vision fallback")
	}

	zap.L().Debug("vision fallback transcription complete",
		zap.String("mime_type", mimeType),
		zap.String("model", resp.Model),
		zap.Int("chars", len(resp.Text)),
	)

	return resp.Text, nil
}

// normalizePayload re-encodes mime types the remote service does not
// accept into a broadly-supported image encoding.
func normalizePayload(payload []byte, mimeType string) ([]byte, string, error) {
	switch mimeType {
	case "image/tiff", "image/tif":
		img, err := tiff.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, "", eris.Wrap(err, "ocr: decode tiff")
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			return nil, "", eris.Wrap(err, "ocr: re-encode tiff as jpeg")
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		return payload, mimeType, nil
	}
}
