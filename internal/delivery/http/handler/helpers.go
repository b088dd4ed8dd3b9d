package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
	"go-appointment-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// writeError maps usecase error kinds onto status codes. Anything that is not
// a known kind is reported as a 500 with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrDuplicateResource):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrValidation):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// decodeBody decodes and validates a JSON body, writing the 400 itself.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryTime parses an RFC 3339 query parameter.
func queryTime(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, r.URL.Query().Get(name))
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s, use RFC 3339", name), nil)
		return time.Time{}, false
	}
	return t, true
}

func queryDecimal(w http.ResponseWriter, r *http.Request, name string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(r.URL.Query().Get(name))
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name), nil)
		return decimal.Zero, false
	}
	return d, true
}

// queryActiveOnly reads the optional active=true|false flag, defaulting to false.
func queryActiveOnly(r *http.Request) bool {
	return r.URL.Query().Get("active") == "true"
}
