package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/engine"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
	"github.com/gyaneshwarpardhi/inspector/internal/projection"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/events", h.appendEvent)
	h.mux.HandleFunc("POST /v1/events/batch", h.appendBatch)
	h.mux.HandleFunc("DELETE /v1/events", h.clearEvents)
	h.mux.HandleFunc("GET /v1/entries", h.listEntries)
	h.mux.HandleFunc("POST /v1/inspect", h.inspect)
	h.mux.HandleFunc("GET /v1/tables", h.listTables)
	h.mux.HandleFunc("POST /v1/tables/reload", h.reloadTables)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return otelhttp.NewHandler(loggingMiddleware(h.mux), "inspector")
}

// POST /v1/events: append a single event to the history.
func (h *Handler) appendEvent(w http.ResponseWriter, r *http.Request) {
	var ev event.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeDecodeError(w, err)
		return
	}
	h.eng.Append(ev)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"appended": 1})
}

// POST /v1/events/batch: append events in array order.
func (h *Handler) appendBatch(w http.ResponseWriter, r *http.Request) {
	events, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	h.eng.Append(events...)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"appended": len(events)})
}

// DELETE /v1/events: drop the history.
func (h *Handler) clearEvents(w http.ResponseWriter, r *http.Request) {
	id := h.eng.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{"cleared": true, "stream_id": id})
}

// GET /v1/entries?category=&failed=&q=: merged rows for the history.
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v := h.eng.Entries(f)
	annotate(r, v)
	writeJSON(w, http.StatusOK, v)
}

// POST /v1/inspect: stateless merge of the posted events.
func (h *Handler) inspect(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	v := h.eng.Inspect(events, f)
	annotate(r, v)
	writeJSON(w, http.StatusOK, v)
}

// GET /v1/tables: the active classifier tables.
func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	cfg := h.loader.Config()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": cfg.Version,
		"source":  h.loader.Path(),
		"tables":  cfg.Tables,
	})
}

// POST /v1/tables/reload: re-read the table file. The engine follows the
// loader, so a successful reload swaps the classifier before this returns.
func (h *Handler) reloadTables(w http.ResponseWriter, r *http.Request) {
	if h.loader.Path() == "" {
		writeError(w, http.StatusConflict, "running on built-in tables; no config file to reload")
		return
	}
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":    true,
		"kinds_count": len(cfg.Tables.Kinds),
	})
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeBatch(w http.ResponseWriter, r *http.Request) ([]event.RawEvent, bool) {
	var events []event.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeDecodeError(w, err)
		return nil, false
	}
	if len(events) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return nil, false
	}
	if max := h.loader.Config().Server.MaxBatch; len(events) > max {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(events), max))
		return nil, false
	}
	return events, true
}

func parseFilter(r *http.Request) (projection.Filter, error) {
	q := r.URL.Query()
	f := projection.Filter{Category: q.Get("category"), Text: q.Get("q")}
	if s := q.Get("failed"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("invalid failed=%q: %w", s, err)
		}
		f.FailedOnly = b
	}
	return f, nil
}

// annotate records the merge outcome on the request span.
func annotate(r *http.Request, v *engine.View) {
	trace.SpanFromContext(r.Context()).SetAttributes(
		attribute.Int("inspector.events", v.Events),
		attribute.Int("inspector.entries", v.Summary.Total),
		attribute.Int("inspector.failed", v.Summary.Failed),
		attribute.Int("inspector.pending", v.Summary.Pending),
	)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, event.ErrMissingKind) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
}
