package extract

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// pdfToText extracts the native text layer of a PDF via the pdftotext CLI.
type pdfToText struct {
	binPath  string
	minChars int
}

func newPdfToText(binPath string, minChars int) *pdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &pdfToText{binPath: binPath, minChars: minChars}
}

// extract runs pdftotext -layout over the PDF bytes and returns the trimmed
// text layer. Callers decide whether a short result counts as a scan.
func (p *pdfToText) extract(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "case-cli-*.pdf")
	if err != nil {
		return "", eris.Wrap(err, "pdf: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return "", eris.Wrap(err, "pdf: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return "", eris.Wrap(err, "pdf: close temp file")
	}

	cmd := exec.CommandContext(ctx, p.binPath, "-layout", tmp.Name(), "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "pdf: pdftotext failed: %s", stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}
