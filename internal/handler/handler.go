package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"trade-kart/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a plain error response with the given status code.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a business rejection onto an HTTP status, falling
// back to 500 for anything that is not a DomainError.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected handler error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Str("message", domainErr.Message).
		Msg("request rejected")

	writeJSON(w, statusForCode(domainErr.Code), model.ErrorResponse{
		Error:   domainErr.Code,
		Message: domainErr.Message,
	})
}

// statusForCode picks the HTTP status for a domain error code.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeOrderItemNotFound,
		model.ErrCodeWarrantyNotFound,
		model.ErrCodeClaimNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateSerial, model.ErrCodeCheckoutInFlight:
		return http.StatusConflict
	case model.ErrCodePaymentFailed:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON decodes a request body, rejecting unknown payloads uniformly.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Request body is not valid JSON")
	}
	return nil
}
