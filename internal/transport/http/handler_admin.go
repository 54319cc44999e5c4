package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apppublic "holdem-server/internal/app/public"
	"holdem-server/internal/lobby"

	"github.com/go-chi/chi/v5"
)

// Pinger reports database health. The store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AdminHandlers struct {
	publicSvc *apppublic.Service
	db        Pinger
}

func NewAdminHandlers(publicSvc *apppublic.Service, db Pinger) *AdminHandlers {
	return &AdminHandlers{publicSvc: publicSvc, db: db}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"ok": true, "tables": h.publicSvc.LiveTables(), "db": "disabled"}
		if h.db != nil {
			if err := h.db.Ping(r.Context()); err != nil {
				body["ok"] = false
				body["db"] = "down"
				writeJSON(w, http.StatusServiceUnavailable, body)
				return
			}
			body["db"] = "up"
		}
		writeJSON(w, http.StatusOK, body)
	}
}

type createTableRequest struct {
	TableID string `json:"table_id"`
	Variant string `json:"variant"`
}

func (h *AdminHandlers) CreateTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.publicSvc.CreateTable(r.Context(), req.TableID, req.Variant)
		if err != nil {
			switch {
			case errors.Is(err, lobby.ErrAlreadyExists):
				WriteHTTPError(w, http.StatusConflict, "table_exists")
			case errors.Is(err, lobby.ErrUnknownVariant):
				WriteHTTPError(w, http.StatusBadRequest, "unknown_variant")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		metricTablesCreatedHTTP.Add(1)
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (h *AdminHandlers) CloseTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.publicSvc.CloseTable(r.Context(), chi.URLParam(r, "table_id"))
		if err != nil {
			switch {
			case errors.Is(err, apppublic.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, apppublic.ErrTableNotFound):
				WriteHTTPError(w, http.StatusNotFound, "table_not_found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		metricTablesClosedHTTP.Add(1)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AdminHandlers) HandLedger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.publicSvc.HandLedger(r.Context(), chi.URLParam(r, "hand_id"))
		if err != nil {
			switch {
			case errors.Is(err, apppublic.ErrJournalDisabled):
				WriteHTTPError(w, http.StatusNotImplemented, "journal_disabled")
			case errors.Is(err, apppublic.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, apppublic.ErrHandNotFound):
				WriteHTTPError(w, http.StatusNotFound, "hand_not_found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
