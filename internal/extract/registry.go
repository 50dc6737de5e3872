package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/sniff"
	"github.com/lexkit/case-cli/internal/udf"
)

// Fallback is the remote vision/transcription seam used when no native text
// extraction exists for a kind (images, audio, video, scanned PDFs).
// Satisfied by ocr.Client.
type Fallback interface {
	Extract(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}

// Options configures the registry.
type Options struct {
	// PdfToTextPath locates the pdftotext binary. Empty means "pdftotext".
	PdfToTextPath string
	// MinPDFTextChars is the minimum text-layer length below which a PDF is
	// treated as scanned. Default 50.
	MinPDFTextChars int
}

// Registry dispatches artifacts to the extraction strategy for their kind.
type Registry struct {
	pdf      *pdfToText
	fallback Fallback
}

// NewRegistry creates a registry. fallback may be nil, in which case kinds
// that require the remote vision service fail with a descriptive reason.
func NewRegistry(opts Options, fallback Fallback) *Registry {
	minChars := opts.MinPDFTextChars
	if minChars <= 0 {
		minChars = 50
	}
	return &Registry{
		pdf:      newPdfToText(opts.PdfToTextPath, minChars),
		fallback: fallback,
	}
}

const headerLen = 8

// Extract classifies and extracts a single artifact. It always returns a
// Result; it never panics past this boundary.
func (r *Registry) Extract(ctx context.Context, name string, data []byte) Result {
	header := data
	if len(header) > headerLen {
		header = header[:headerLen]
	}
	kind := sniff.Classify(name, header)

	switch kind {
	case sniff.StructuredArchive:
		text, err := udf.ExtractText(data)
		if err != nil {
			return failure(name, kind, err.Error())
		}
		return success(name, kind, text)

	case sniff.PDF:
		return r.extractPDF(ctx, name, data)

	case sniff.OfficeDocument:
		text, err := extractOfficeText(data)
		if err != nil {
			return failure(name, kind, err.Error())
		}
		return success(name, kind, text)

	case sniff.Spreadsheet:
		text, err := extractSheetText(data)
		if err != nil {
			return failure(name, kind, err.Error())
		}
		return success(name, kind, text)

	case sniff.PlainText:
		return success(name, kind, decodeText(data))

	case sniff.Image, sniff.Audio, sniff.Video:
		return r.remote(ctx, name, kind, data, sniff.MIME(name))

	case sniff.CalendarFeed:
		return failure(name, kind, "calendar feeds are imported into the hearing calendar, not extracted as text")

	default:
		return failure(name, kind, fmt.Sprintf("unsupported format for %s", name))
	}
}

// extractPDF tries the native text layer first. A short result means the
// PDF is a scan with no extractable text layer, which escalates to the
// vision fallback.
func (r *Registry) extractPDF(ctx context.Context, name string, data []byte) Result {
	text, err := r.pdf.extract(ctx, data)
	if err == nil && len(text) >= r.pdf.minChars {
		return success(name, sniff.PDF, text)
	}
	if err != nil {
		zap.L().Debug("pdf text layer extraction failed",
			zap.String("source", name),
			zap.Error(err),
		)
	}

	res := r.remote(ctx, name, sniff.PDF, data, "application/pdf")
	if !res.OK && err == nil {
		res.FailureReason = "no extractable text layer: " + res.FailureReason
	}
	return res
}

func (r *Registry) remote(ctx context.Context, name string, kind sniff.SourceKind, data []byte, mimeType string) Result {
	if r.fallback == nil {
		return failure(name, kind, fmt.Sprintf("no native text extraction for %s and the vision fallback is not configured", kind))
	}

	text, err := r.fallback.Extract(ctx, data, mimeType, "")
	if err != nil {
		return failure(name, kind, err.Error())
	}
	return success(name, kind, text)
}
