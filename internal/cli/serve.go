package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/feature"
	"github.com/SW-Perse/artkathon/pkg/palette"
	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

// shutdownGrace is how long in-flight renders get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// newServeCmd creates the serve command, which runs the HTTP render service.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var defaults pipeline.Options
			configFromContext(ctx).apply(&defaults)

			srv := &renderServer{runner: runner, logger: logger, defaults: defaults}
			httpSrv := &http.Server{
				Addr:        addr,
				Handler:     srv.routes(),
				ReadTimeout: 30 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Info("render service listening", "addr", addr)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}

// renderServer handles the HTTP API on top of a shared pipeline runner.
type renderServer struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

// routes builds the chi router for the service.
func (s *renderServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/schemes", s.handleSchemes)
	r.Post("/render", s.handleRender)
	return r
}

func (s *renderServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// schemeInfo is the JSON shape of one scheme in GET /schemes.
type schemeInfo struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Axis         string                    `json:"axis"`
	WithinStroke float64                   `json:"within_stroke"`
	Emotions     map[string]palette.Sample `json:"emotions"`
}

func (s *renderServer) handleSchemes(w http.ResponseWriter, r *http.Request) {
	out := make([]schemeInfo, 0, len(palette.Names()))
	for _, name := range palette.Names() {
		sc := palette.Lookup(name)
		emotions := make(map[string]palette.Sample, len(palette.Emotions))
		for _, e := range palette.Emotions {
			emotions[e] = sc.ForEmotion(e)
		}
		out = append(out, schemeInfo{
			Name:         sc.Name,
			Description:  sc.Description,
			Axis:         sc.Axis,
			WithinStroke: sc.WithinStroke,
			Emotions:     emotions,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// renderRequest is the JSON body of POST /render. Either the poem fields or
// a pre-computed vector must be present.
type renderRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text,omitempty"`
	Poet   string `json:"poet,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Vector string `json:"vector,omitempty"`

	Scheme string `json:"scheme,omitempty"`
	Style  string `json:"style,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

func (s *renderServer) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	item, err := s.buildItem(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := s.defaults
	if req.Scheme != "" {
		opts.Scheme = req.Scheme
	}
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Height != 0 {
		opts.Height = req.Height
	}
	opts.Seed = req.Seed
	opts.Logger = s.logger

	result, err := s.runner.RenderItem(r.Context(), item, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Artkathon-Emotion", result.Emotion)
	w.Header().Set("X-Artkathon-Colormap", result.Colormap)
	if result.CacheHit {
		w.Header().Set("X-Artkathon-Cache", "hit")
	} else {
		w.Header().Set("X-Artkathon-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

// buildItem assembles the item to render from the request body.
func (s *renderServer) buildItem(ctx context.Context, req renderRequest) (dataset.Item, error) {
	title := req.Title
	if title == "" {
		title = "untitled"
	}
	item := dataset.Item{Title: title, Poet: req.Poet, Genre: req.Genre}

	if req.Vector != "" {
		vec, err := dataset.ParseVector(req.Vector)
		if err != nil {
			return item, err
		}
		item.Vector = vec
		return item, nil
	}
	if strings.TrimSpace(req.Text) == "" {
		return item, fmt.Errorf("text or vector is required")
	}

	vec, err := s.runner.Vector(ctx, feature.Poem{
		Title: title,
		Text:  req.Text,
		Poet:  req.Poet,
		Genre: req.Genre,
	})
	if err != nil {
		return item, err
	}
	item.Vector = vec
	return item, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
