// Package http hosts the JSON request handlers for the gateway.
package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/re-hustle/rehustle-api/internal/crm"
	"github.com/re-hustle/rehustle-api/internal/deal"
	"github.com/re-hustle/rehustle-api/internal/scoring"
	"github.com/re-hustle/rehustle-api/internal/user"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func errJSON(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, r, status, map[string]any{"error": code, "detail": detail})
}

// domainError translates engine, store and CRM failures into API responses.
func domainError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *scoring.InvalidFieldError
	var divErr *scoring.DivisionByZeroError
	switch {
	case errors.Is(err, scoring.ErrUnsupportedPropertyType):
		errJSON(w, r, http.StatusBadRequest, "unsupported_property_type", err.Error())
	case errors.As(err, &fieldErr):
		errJSON(w, r, http.StatusUnprocessableEntity, "invalid_field", fieldErr.Error())
	case errors.As(err, &divErr):
		errJSON(w, r, http.StatusUnprocessableEntity, "division_by_zero", divErr.Error())
	case errors.Is(err, deal.ErrNotFound):
		errJSON(w, r, http.StatusNotFound, "not_found", "deal not found")
	case errors.Is(err, user.ErrNotFound):
		errJSON(w, r, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, crm.ErrNotConfigured):
		errJSON(w, r, http.StatusBadRequest, "crm_not_configured", "configure a CRM in account settings first")
	default:
		errJSON(w, r, http.StatusInternalServerError, "internal", err.Error())
	}
}
