package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"merch/internal/config"
	"merch/internal/game"
	"merch/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg   config.APIConfig
	log   *slog.Logger
	store *store.SessionStore
	recon *game.Reconciler
	mux   *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, sessions *store.SessionStore, recon *game.Reconciler) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if recon == nil {
		recon = game.NewReconciler()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		store: sessions,
		recon: recon,
		mux:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/forecast", s.handleForecast)
		r.Post("/sessions", s.handleCreateSession)
		r.Put("/sessions/{id}/weeks/{week}", s.handlePutWeek)
		r.Get("/sessions/{id}/weeks/{week}/summary", s.handleWeekSummary)
		r.Get("/sessions/{id}/series", s.handleSeries)
	})
}

type forecastRequest struct {
	game.ForecastInput
	BenchmarkPrice float64 `json:"benchmark_price,omitempty"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var in forecastRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.ReferencePrice == 0 && in.BenchmarkPrice > 0 {
		in.ReferencePrice = game.ReferencePrice(in.BenchmarkPrice)
	}
	units, ok := game.ForecastDemand(in.ForecastInput)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "units": units})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id := s.store.CreateSession()
	s.log.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": id})
}

func (s *Server) handlePutWeek(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week number")
		return
	}

	var in struct {
		State  game.GameWeekState `json:"state"`
		Ledger []game.LedgerEntry `json:"ledger"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.State.WeekNumber != week {
		writeError(w, http.StatusBadRequest, "state week number does not match path")
		return
	}
	if err := s.store.PutWeek(sessionID, in.State, in.Ledger); err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("week ingested", "session_id", sessionID, "week", week, "ledger_rows", len(in.Ledger))
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleWeekSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week number")
		return
	}

	prev, err := s.store.GetWeek(sessionID, week-1)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	next, err := s.store.GetWeek(sessionID, week)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	history, err := s.store.History(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	summary, err := s.recon.ComputeWeekSummary(sessionID, &prev.State, &next.State, next.Ledger, history)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	history, err := s.store.History(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": game.DemandSeries(history)})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, store.ErrWeekNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrWeekExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrOutOfOrder),
		errors.Is(err, game.ErrWeekOutOfRange),
		errors.Is(err, game.ErrNonConsecutiveWeeks),
		errors.Is(err, game.ErrUnknownEntryType),
		errors.Is(err, game.ErrLedgerWeekMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
