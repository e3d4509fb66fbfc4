// Package server serves the property comparison web UI and its JSON API.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/rental-compare/internal/portfolio"
	"github.com/iwvelando/rental-compare/pkg/metrics"
	"github.com/iwvelando/rental-compare/pkg/output"
	"github.com/iwvelando/rental-compare/pkg/validation"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger   *zap.Logger
	cfg      *Config
	version  string
	sessions *sessionStore
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// comparison API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:   logger,
		cfg:      cfg,
		version:  trimmedVersion,
		sessions: newSessionStore(logger, cfg.SessionIdleTTL()),
	}

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Use(NewRateLimiter(cfg.RateLimit.Requests, cfg.RateWindow()).Middleware(logger))
	api.Use(h.limitBody)

	// Session portfolio
	api.HandleFunc("/properties", h.handleListProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties", h.handleAddProperty).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}", h.handleGetProperty).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", h.handleUpdateProperty).Methods(http.MethodPut)
	api.HandleFunc("/properties/{id}", h.handleDeleteProperty).Methods(http.MethodDelete)
	api.HandleFunc("/export.csv", h.handleExportCSV).Methods(http.MethodGet)

	// Stateless calculation
	api.HandleFunc("/compute", h.handleCompute).Methods(http.MethodPost)

	// Version endpoint for UI metadata
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	router.PathPrefix("/").Methods(http.MethodGet, http.MethodHead).Handler(http.FileServer(http.FS(sub)))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

type propertyRequest struct {
	Name  string                `json:"name"`
	Input metrics.PropertyInput `json:"input"`
}

type computeRequest struct {
	Properties []propertyRequest `json:"properties"`
}

type rowsResponse struct {
	Rows     []portfolio.Row `json:"rows"`
	Currency string          `json:"currency"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
	Index  *int                    `json:"index,omitempty"`
}

func (h *handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.cfg.BodySizeBytes())
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(w, r)

	s.mu.Lock()
	rows := s.portfolio.Evaluate()
	s.mu.Unlock()

	h.writeJSON(w, http.StatusOK, rowsResponse{Rows: rows, Currency: h.cfg.Currency.Symbol})
}

func (h *handler) handleAddProperty(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddProperty"

	req, ok := h.decodeProperty(w, r, op)
	if !ok {
		return
	}

	s := h.sessionFor(w, r)
	s.mu.Lock()
	property := s.portfolio.Add(req.Name, req.Input)
	count := s.portfolio.Len()
	s.mu.Unlock()

	h.logger.Info("property added",
		zap.String("op", op),
		zap.String("id", property.ID),
		zap.Int("properties", count),
	)
	h.writeJSON(w, http.StatusCreated, portfolio.Evaluate([]portfolio.Property{property})[0])
}

func (h *handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s := h.sessionFor(w, r)
	s.mu.Lock()
	property, err := s.portfolio.Get(id)
	s.mu.Unlock()
	if err != nil {
		h.respondPortfolioError(w, err, id, "server.handleGetProperty")
		return
	}

	h.writeJSON(w, http.StatusOK, portfolio.Evaluate([]portfolio.Property{property})[0])
}

func (h *handler) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateProperty"
	id := mux.Vars(r)["id"]

	req, ok := h.decodeProperty(w, r, op)
	if !ok {
		return
	}

	s := h.sessionFor(w, r)
	s.mu.Lock()
	property, err := s.portfolio.Update(id, req.Name, req.Input)
	s.mu.Unlock()
	if err != nil {
		h.respondPortfolioError(w, err, id, op)
		return
	}

	h.logger.Info("property updated",
		zap.String("op", op),
		zap.String("id", id),
	)
	h.writeJSON(w, http.StatusOK, portfolio.Evaluate([]portfolio.Property{property})[0])
}

func (h *handler) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteProperty"
	id := mux.Vars(r)["id"]

	s := h.sessionFor(w, r)
	s.mu.Lock()
	err := s.portfolio.Remove(id)
	count := s.portfolio.Len()
	s.mu.Unlock()
	if err != nil {
		h.respondPortfolioError(w, err, id, op)
		return
	}

	h.logger.Info("property removed",
		zap.String("op", op),
		zap.String("id", id),
		zap.Int("properties", count),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(w, r)

	s.mu.Lock()
	rows := s.portfolio.Evaluate()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rental-comparison.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := output.WriteCSV(w, rows); err != nil {
		h.logger.Error("failed to write CSV export",
			zap.String("op", "server.handleExportCSV"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"
	start := time.Now()

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	properties := make([]portfolio.Property, 0, len(req.Properties))
	for i, p := range req.Properties {
		if err := validation.ValidateProperty(p.Input, h.cfg.Limits); err != nil {
			index := i
			h.respondValidationError(w, err, &index, op)
			return
		}
		properties = append(properties, portfolio.Property{Name: p.Name, Input: p.Input})
	}

	rows := portfolio.Evaluate(properties)
	h.logger.Info("comparison computed",
		zap.String("op", op),
		zap.Int("properties", len(rows)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, rowsResponse{Rows: rows, Currency: h.cfg.Currency.Symbol})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeProperty(w http.ResponseWriter, r *http.Request, op string) (propertyRequest, bool) {
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, op)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.ValidateProperty(req.Input, h.cfg.Limits); err != nil {
		h.respondValidationError(w, err, nil, op)
		return req, false
	}
	return req, true
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.cfg.BodySizeBytes()), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respondValidationError(w http.ResponseWriter, err error, index *int, op string) {
	resp := errorResponse{Error: err.Error(), Index: index}
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		resp.Error = "invalid property"
		resp.Fields = fieldErrs
	}

	h.logger.Warn("property rejected",
		zap.String("op", op),
		zap.Error(err),
	)
	h.writeJSON(w, http.StatusBadRequest, resp)
}

func (h *handler) respondPortfolioError(w http.ResponseWriter, err error, id, op string) {
	if errors.Is(err, portfolio.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("property %s not found", id), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
