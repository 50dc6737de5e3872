package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/deadline"
	"github.com/lexkit/case-cli/internal/hearing"
	"github.com/lexkit/case-cli/internal/llm"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API over the archive, calendar and completion chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		hearings, err := hearing.OpenStore(cfg.Hearings.StorePath)
		if err != nil {
			return err
		}

		mux := newMux(env, hearings)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go drainOnCancel(ctx, srv, shutdownTimeout)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

const shutdownTimeout = 10 * time.Second

// drainOnCancel shuts the server down once ctx is cancelled. The shutdown
// gets a fresh timeout context; the cancelled signal context would make
// Shutdown return immediately and skip draining in-flight requests.
func drainOnCancel(ctx context.Context, srv *http.Server, timeout time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newMux(env *pipelineEnv, hearings *hearing.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /cases", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Category   string `json:"category"`
			Court      string `json:"court"`
			CaseNumber string `json:"case_number"`
			Parties    string `json:"parties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		casePath, err := env.Archive.CreateCase(req.Category, req.Court, req.CaseNumber, req.Parties)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"path": casePath})
	})

	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Term string `json:"term"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		hits, err := env.Archive.Search(req.Term)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		type hit struct {
			Path      string `json:"path"`
			IsDir     bool   `json:"is_dir"`
			FileCount int    `json:"file_count,omitempty"`
		}
		out := make([]hit, len(hits))
		for i, h := range hits {
			out[i] = hit{Path: h.Path, IsDir: h.IsDir, FileCount: h.FileCount}
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": out})
	})

	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Case   string `json:"case"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Prompt == "" {
			http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
			return
		}

		prompt := req.Prompt
		if req.Case != "" {
			aggregate, perFileErrors, err := env.Archive.OpenCase(r.Context(), req.Case, env.Registry, cfg.Context.BudgetChars, cfg.Extract.Concurrency)
			if err != nil {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
				return
			}
			if len(perFileErrors) > 0 {
				zap.L().Warn("some case artifacts failed extraction",
					zap.String("case", req.Case),
					zap.Int("failed", len(perFileErrors)),
				)
			}
			prompt = "Belgeler:\n\n" + aggregate + "\n\nSoru: " + req.Prompt
		}

		resp, err := env.Resolver.Complete(r.Context(), llm.Request{
			Prompt:    prompt,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": resp.Text, "model": resp.Model})
	})

	mux.HandleFunc("GET /hearings", func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		type item struct {
			hearing.Event
			Status string `json:"status"`
		}
		events := hearings.Events()
		out := make([]item, len(events))
		for i, ev := range events {
			out[i] = item{Event: ev, Status: ev.Classify(now).String()}
		}
		writeJSON(w, http.StatusOK, map[string]any{"hearings": out})
	})

	mux.HandleFunc("POST /deadline", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Start        string `json:"start"`
			DurationDays int    `json:"duration_days"`
			RecessAdjust bool   `json:"recess_adjust"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		start, err := time.Parse(deadlineDateLayout, req.Start)
		if err != nil {
			http.Error(w, `{"error":"start must be YYYY-MM-DD"}`, http.StatusBadRequest)
			return
		}

		res := deadline.Calculate(deadline.Spec{
			Start:        start,
			DurationDays: req.DurationDays,
			RecessAdjust: req.RecessAdjust,
		}, time.Now())

		writeJSON(w, http.StatusOK, map[string]any{
			"due_date":         res.DueDate.Format(deadlineDateLayout),
			"recess_adjusted":  res.RecessAdjusted,
			"weekend_adjusted": res.WeekendAdjusted,
			"days_remaining":   res.DaysRemaining,
		})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
