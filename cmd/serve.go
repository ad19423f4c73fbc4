package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-merge-cli/internal/catalog"
	"github.com/sells-group/esg-merge-cli/internal/merger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for question generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		m, err := initMerger()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(cat, m),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// newRouter builds the API routes.
func newRouter(cat *catalog.Catalog, m *merger.Merger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/frameworks", func(w http.ResponseWriter, req *http.Request) {
		type frameworkInfo struct {
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
			Questions   int    `json:"questions"`
		}
		var out []frameworkInfo
		for _, fw := range cat.Frameworks() {
			out = append(out, frameworkInfo{
				Name:        fw.Name,
				Description: fw.Description,
				Questions:   len(fw.Questions),
			})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Post("/api/generate", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Count      int      `json:"count"`
			Frameworks []string `json:"frameworks"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Count <= 0 {
			body.Count = 5
		}

		merged, err := m.Generate(req.Context(), cat.Resolve(body.Frameworks), body.Count)
		switch {
		case errors.Is(err, merger.ErrInsufficientFrameworks):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least two distinct frameworks are required"})
		case errors.Is(err, merger.ErrNoQuestionsGenerated):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not generate any merged questions"})
		case err != nil:
			zap.L().Error("generate failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		default:
			writeJSON(w, http.StatusOK, merged)
		}
	})

	return r
}

// requestLogger logs each request with its chi request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		zap.L().Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(req.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
