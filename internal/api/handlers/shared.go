package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; every request in this API is a small JSON object.
const maxBodyBytes = 1 << 20

// pathParam returns the chi URL parameter key, decoded.
// chi routes on the escaped path whenever the request has one (an asset such as "BTC/USD"
// arrives as BTC%2FUSD), and then the parameter is still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// parseJSON decodes the request body into T, rejecting unknown fields and trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is empty")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}

// respondValidationError sends 400 with the per-field messages of a validation.Error
// as details, or the plain message for any other error.
func respondValidationError(w http.ResponseWriter, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", ve.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps a service error to its HTTP status.
// Errors that match no business rule are reported as 500 with fallback as the message.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	switch {
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrAssetNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrProviderSettingNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrProviderSettingNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInsufficientCash):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientCash.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInsufficientShares):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), err.Error())
	case errors.Is(err, apperrors.ErrAssetNotHeld):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrAssetNotHeld.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidTarget):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTarget.Error(), err.Error())
	case errors.Is(err, apperrors.ErrUnknownProvider):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownProvider.Error(), err.Error())
	case errors.Is(err, apperrors.ErrReadOnlySource):
		response.RespondError(w, http.StatusMethodNotAllowed, apperrors.ErrReadOnlySource.Error(), err.Error())
	case errors.Is(err, apperrors.ErrEncryptionDisabled):
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrEncryptionDisabled.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
