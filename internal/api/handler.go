package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/metrics"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
	"github.com/eugenenazirov/pouch-estimator/internal/storage"
	"github.com/eugenenazirov/pouch-estimator/internal/wizard"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxBodyBytes = 64 << 10

// Handler wires the estimator and session storage into HTTP handlers.
type Handler struct {
	engine    estimator.Engine
	storage   storage.Storage
	submitter wizard.Submitter
	locale    string
	logger    *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLocale sets the locale used when a request does not name one.
func WithLocale(locale string) HandlerOption {
	return func(h *Handler) {
		h.locale = locale
	}
}

// WithSubmitter sets the collaborator receiving submitted estimates.
func WithSubmitter(s wizard.Submitter) HandlerOption {
	return func(h *Handler) {
		h.submitter = s
	}
}

// WithHandlerLogger sets the logger used by handlers.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(engine estimator.Engine, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		storage:   store,
		submitter: wizard.SubmitterFunc(func(wizard.Handoff) {}),
		locale:    format.DefaultLocale,
		logger:    zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories: packaging.DefaultTable(),
		Reference:  packaging.Flexible(),
	})
}

func (h *Handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	usage := packaging.NewUsage()
	if req.Usage != nil {
		usage = req.Usage.usage()
	}

	snapshot := estimator.Resolve(req.Specs.specs(), usage, req.NotSure)
	results := instrument(h.engine, "direct").Estimate(snapshot)
	f := format.New(h.localeOr(req.Locale))

	writeJSON(w, http.StatusOK, estimateResponse{
		Results:   results,
		Display:   f.Results(results),
		Summary:   f.Summary(results),
		Defaulted: snapshot.Defaulted(),
	})
}

func (h *Handler) handleCreateWizard(w http.ResponseWriter, r *http.Request) {
	var req createWizardRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	c := h.newWizard(h.localeOr(req.Locale))
	id, err := h.storage.Create(c)
	if err != nil {
		if errors.Is(err, storage.ErrCapacity) {
			writeError(w, http.StatusServiceUnavailable, "Too many sessions", err.Error(), "retry after existing sessions expire")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newWizardResponse(id, true, c))
}

func (h *Handler) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(*wizard.Controller) bool { return true })
}

func (h *Handler) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.withWizard(w, r, func(c *wizard.Controller) bool {
		return c.SelectCategory(packaging.ParseCategory(req.Category))
	})
}

func (h *Handler) handleSetSpecs(w http.ResponseWriter, r *http.Request) {
	var payload specsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.withWizard(w, r, func(c *wizard.Controller) bool {
		return c.SetSpecs(payload.specs())
	})
}

func (h *Handler) handleSetUsage(w http.ResponseWriter, r *http.Request) {
	var payload usagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.withWizard(w, r, func(c *wizard.Controller) bool {
		return c.SetUsage(payload.usage())
	})
}

func (h *Handler) handleSetNotSure(w http.ResponseWriter, r *http.Request) {
	var flags packaging.NotSureFlags
	if err := decodeJSON(r, &flags); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.withWizard(w, r, func(c *wizard.Controller) bool {
		return c.SetNotSure(flags)
	})
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, (*wizard.Controller).Advance)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, (*wizard.Controller).Back)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, (*wizard.Controller).Reset)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		handoff wizard.Handoff
		applied bool
		resp    wizardResponse
	)
	err := h.storage.With(id, func(c *wizard.Controller) error {
		handoff, applied = c.Submit()
		resp = newWizardResponse(id, applied, c)
		return nil
	})
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	if !applied {
		writeJSON(w, http.StatusOK, submitResponse{wizardResponse: resp})
		return
	}

	if err := h.storage.Delete(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Warn("failed to drop submitted session", zap.String("session_id", id), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, submitResponse{wizardResponse: resp, Handoff: &handoff})
}

func (h *Handler) handleDeleteWizard(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Delete(r.PathValue("id")); err != nil {
		h.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withWizard applies op to the session and writes the resulting view. A
// rejected operation is reported with applied=false, not as an error.
func (h *Handler) withWizard(w http.ResponseWriter, r *http.Request, op func(*wizard.Controller) bool) {
	id := r.PathValue("id")

	var resp wizardResponse
	err := h.storage.With(id, func(c *wizard.Controller) error {
		resp = newWizardResponse(id, op(c), c)
		return nil
	})
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) newWizard(locale string) *wizard.Controller {
	return wizard.New(
		wizard.WithEngine(instrument(h.engine, "wizard")),
		wizard.WithSubmitter(h.submitter),
		wizard.WithLocale(locale),
		wizard.WithObserver(func(t wizard.Transition) {
			metrics.WizardTransitions.WithLabelValues(string(t.Event), t.To.String()).Inc()
		}),
	)
}

func (h *Handler) localeOr(locale string) string {
	if locale == "" {
		return h.locale
	}
	return locale
}

func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found", err.Error(), "start a new wizard session")
		return
	}
	writeInternalError(w, err)
}

// instrumentedEngine counts every estimator run.
type instrumentedEngine struct {
	next   estimator.Engine
	origin string
}

func instrument(next estimator.Engine, origin string) estimator.Engine {
	return &instrumentedEngine{next: next, origin: origin}
}

func (e *instrumentedEngine) Estimate(s estimator.Snapshot) estimator.Results {
	metrics.Estimates.WithLabelValues(e.origin, string(s.Category())).Inc()
	return e.next.Estimate(s)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
