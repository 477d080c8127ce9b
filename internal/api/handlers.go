package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/internal/metrics"
	"github.com/dmitrymomot/esflavor/pkg/binder"
	"github.com/dmitrymomot/esflavor/pkg/esid"
	"github.com/dmitrymomot/esflavor/pkg/i18n"
	"github.com/dmitrymomot/esflavor/pkg/logger"
)

func (h *Handler) listKinds(w http.ResponseWriter, r *http.Request) {
	kinds := esid.Kinds()
	resp := KindsResponse{Kinds: make([]string, 0, len(kinds))}
	for _, k := range kinds {
		resp.Kinds = append(resp.Kinds, k.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) validateOne(w http.ResponseWriter, r *http.Request) {
	kind, err := esid.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		msg := h.tr.T(i18n.Locale(r.Context()), "validation.es."+batch.CodeUnknownKind)
		writeError(w, http.StatusNotFound, batch.CodeUnknownKind, msg, nil)
		return
	}

	var req ValidateRequest
	if err := binder.JSON(r, &req); err != nil {
		h.bindError(w, r, err)
		return
	}
	if err := req.Validate(kind); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "Invalid request", validationDetails(err))
		return
	}

	results := []batch.Result{batch.Check(0, batch.Item{
		Kind:       kind.String(),
		Value:      req.Value,
		OnlyNIFNIE: req.OnlyNIFNIE,
	})}
	batch.Localize(results, h.tr, i18n.Locale(r.Context()))
	res := results[0]
	verr := resultErr(res)
	h.metrics.ObserveValidation(kind, verr)

	h.log.DebugContext(r.Context(), "value validated",
		logger.Kind(res.Kind),
		logger.Code(metrics.Outcome(verr)),
	)
	writeJSON(w, http.StatusOK, newValidateResponse(res))
}

func (h *Handler) validateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := binder.JSON(r, &req); err != nil {
		h.bindError(w, r, err)
		return
	}
	if err := req.Validate(h.maxItems); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "Invalid request", validationDetails(err))
		return
	}

	results, err := h.runner.Run(r.Context(), req.Items)
	switch {
	case errors.Is(err, batch.ErrTooManyItems):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "Invalid request",
			map[string][]string{"items": {"too many items"}})
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "batch validation aborted", logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unavailable", "Batch validation did not complete", nil)
		return
	}

	batch.Localize(results, h.tr, i18n.Locale(r.Context()))
	writeJSON(w, http.StatusOK, BatchResponse{Results: results, Invalid: batch.Invalid(results)})
}

func (h *Handler) bindError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.DebugContext(r.Context(), "request body rejected", logger.Error(err))
	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Expected an application/json body", nil)
	case errors.Is(err, binder.ErrBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large", nil)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "Malformed JSON body", nil)
	}
}

func resultErr(res batch.Result) error {
	if res.Valid {
		return nil
	}
	return &esid.Error{Kind: esid.Kind(res.Kind), Code: esid.Code(res.Code)}
}
