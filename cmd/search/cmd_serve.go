package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/internal/config"
	"github.com/pdrpinto/search/internal/logging"
	"github.com/pdrpinto/search/tilegame"
)

type serveFlags struct {
	addr     string
	file     string
	size     int
	strategy string
}

func newServeCmd(a *app) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a step-by-step search over HTTP as JSON",
		Long: "serve exposes one problem over HTTP: /init resets the search (optionally\n" +
			"?strategy=bfs|dfs|astar), /next advances it by one removal and /metrics\n" +
			"serves the Prometheus registry.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := a.stepHandler(flags)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), flags.addr, handler, logging.New("serve"))
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.addr, "addr", "127.0.0.1:8080", "Listen address")
	f.StringVarP(&flags.file, "file", "f", "", "Problem file (default: random tile puzzle)")
	f.IntVarP(&flags.size, "size", "n", 3, "Board size for the random tile puzzle")
	f.StringVarP(&flags.strategy, "strategy", "s", "", "Initial strategy (default from file, else astar)")
	return cmd
}

// stepHandler builds the HTTP handler for the problem selected by flags.
func (a *app) stepHandler(flags serveFlags) (http.Handler, error) {
	var file *config.ProblemFile
	if flags.file != "" {
		var err error
		if file, err = config.LoadFile(flags.file); err != nil {
			return nil, err
		}
	}
	strategy, err := pickStrategy(flags.strategy, file)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	if file == nil {
		game, err := tilegame.Random(flags.size, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		if err != nil {
			return nil, err
		}
		err = register(mux, a, tileInstance(fmt.Sprintf("random %dx%d", flags.size, flags.size), game, nil), strategy)
		return mux, err
	}
	err = withProblem(file, problemHandlers{
		graph: func(in instance[int]) error {
			return register(mux, a, in, strategy)
		},
		tilegame: func(in instance[tilegame.Board]) error {
			return register(mux, a, in, strategy)
		},
	})
	return mux, err
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("Serving search stepper", "url", "http://"+ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// stepView is the JSON form of a StepSnapshot; states are rendered as labels.
type stepView struct {
	Problem   string   `json:"problem"`
	Strategy  string   `json:"strategy"`
	Step      int      `json:"step"`
	Current   string   `json:"current,omitempty"`
	Frontier  []string `json:"frontier"`
	Expanded  int      `json:"expanded"`
	Generated int      `json:"generated"`
	Done      bool     `json:"done"`
	Found     bool     `json:"found"`
	Path      []string `json:"path,omitempty"`
	Cost      float64  `json:"cost,omitempty"`
}

// stepSession owns the stepper shared by all HTTP requests.
type stepSession[S comparable] struct {
	mu       sync.Mutex
	in       instance[S]
	observer search.Observer
	strategy search.Strategy
	stepper  *search.Stepper[S]
	last     search.StepSnapshot[S]
	reported bool
}

func register[S comparable](mux *http.ServeMux, a *app, in instance[S], strategy search.Strategy) error {
	session := &stepSession[S]{in: in}
	if a.runner.Metrics != nil {
		session.observer = a.runner.Metrics
	}
	if err := session.reset(strategy); err != nil {
		return err
	}
	mux.HandleFunc("/init", session.handleInit)
	mux.HandleFunc("/next", session.handleNext)
	return nil
}

func (s *stepSession[S]) reset(strategy search.Strategy) error {
	stepper, err := search.NewStepper(s.in.problem, strategy, s.in.heuristic, s.in.options...)
	if err != nil {
		return err
	}
	if s.stepper != nil {
		s.finish()
	}
	s.strategy, s.stepper = strategy, stepper
	s.last, s.reported = search.StepSnapshot[S]{}, false
	if s.observer != nil {
		s.observer.SearchStarted(strategy)
	}
	return nil
}

// finish reports the current run to the observer once.
func (s *stepSession[S]) finish() {
	if s.reported || s.observer == nil {
		return
	}
	s.reported = true
	s.observer.SearchFinished(s.strategy, search.Stats{
		Expanded:  s.last.Expanded,
		Generated: s.last.Generated,
		Rounds:    1,
		Found:     s.last.Found,
	})
}

func (s *stepSession[S]) handleInit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	strategy := s.strategy
	if name := r.URL.Query().Get("strategy"); name != "" {
		parsed, err := search.ParseStrategy(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		strategy = parsed
	}
	if err := s.reset(strategy); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "problem": s.in.name, "strategy": strategy.String()})
}

func (s *stepSession[S]) handleNext(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.stepper.Step()
	if err != nil {
		s.last = snap
		s.finish()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	view := stepView{
		Problem:   s.in.name,
		Strategy:  s.strategy.String(),
		Step:      snap.StepIndex,
		Frontier:  labels(snap.Frontier, s.in.label),
		Expanded:  snap.Expanded,
		Generated: snap.Generated,
		Done:      snap.Done,
		Found:     snap.Found,
	}
	if !snap.Done || snap.Found {
		view.Current = s.in.label(snap.Current)
	}
	if snap.Found {
		view.Path = labels(snap.Path, s.in.label)
		if result, err := s.stepper.Result(); err == nil {
			view.Cost = result.Cost
		}
	}
	s.last = snap
	if snap.Done {
		s.finish()
	}
	writeJSON(w, view)
}

func labels[S comparable](states []S, label func(S) string) []string {
	out := make([]string, len(states))
	for i, state := range states {
		out[i] = label(state)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
