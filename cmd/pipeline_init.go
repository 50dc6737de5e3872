package main

import (
	"context"
	"io"

	"github.com/lexkit/case-cli/internal/archive"
	"github.com/lexkit/case-cli/internal/config"
	"github.com/lexkit/case-cli/internal/extract"
	"github.com/lexkit/case-cli/internal/llm"
	"github.com/lexkit/case-cli/internal/ocr"
)

// pipelineEnv holds the initialized components shared by the ingest, ask
// and serve commands.
type pipelineEnv struct {
	Archive  *archive.Store
	Registry *extract.Registry
	Resolver *llm.Resolver
	service  llm.Service
}

// Close releases resources held by the environment.
func (pe *pipelineEnv) Close() {
	if c, ok := pe.service.(io.Closer); ok {
		_ = c.Close()
	}
}

func extractOptions(cfg *config.Config) extract.Options {
	return extract.Options{
		PdfToTextPath:   cfg.Extract.PdfToTextPath,
		MinPDFTextChars: cfg.Extract.MinPDFTextChars,
	}
}

// initArchive opens the archive store for local-only commands. Extraction
// runs without the vision fallback; unreadable scans surface as per-file
// failures instead of OCR results.
func initArchive() (*archive.Store, *extract.Registry, error) {
	if err := cfg.Validate("archive"); err != nil {
		return nil, nil, err
	}

	st, err := archive.NewStore(cfg.Archive.RootDir)
	if err != nil {
		return nil, nil, err
	}

	return st, extract.NewRegistry(extractOptions(cfg), nil), nil
}

// initPipeline sets up the completion backend, the resolver-driven vision
// fallback, the extraction registry and the archive store. Callers should
// defer env.Close().
func initPipeline(ctx context.Context, mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := archive.NewStore(cfg.Archive.RootDir)
	if err != nil {
		return nil, err
	}

	resolver, svc, err := llm.NewResolverFromConfig(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	reg := extract.NewRegistry(extractOptions(cfg), ocr.NewClient(resolver))

	return &pipelineEnv{
		Archive:  st,
		Registry: reg,
		Resolver: resolver,
		service:  svc,
	}, nil
}
