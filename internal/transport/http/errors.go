package http

import (
	"errors"
	"net/http"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidation          = "validation_error"
	codeBookNotFound        = "book_not_found"
	codeLoanNotFound        = "loan_not_found"
	codeBookmarkNotFound    = "bookmark_not_found"
	codeNoCopiesAvailable   = "no_copies_available"
	codeBookHasActiveLoans  = "book_has_active_loans"
	codeEmailTaken          = "email_taken"
	codeInvalidCredentials  = "invalid_credentials"
	codeTransient           = "temporarily_unavailable"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps domain errors onto HTTP statuses: validation 400,
// missing rows 404, domain conflicts 409, bad credentials 401, transient
// store failures 503 (retryable), everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrAuthorRequired),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidYear),
		errors.Is(err, domain.ErrBorrowerRequired),
		errors.Is(err, domain.ErrLibrarianRequired),
		errors.Is(err, domain.ErrDueDateRequired),
		errors.Is(err, domain.ErrInvalidDueDate),
		errors.Is(err, domain.ErrInvalidSort),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeBookNotFound, err.Error())
	case errors.Is(err, domain.ErrLoanNotFound):
		writeError(w, http.StatusNotFound, codeLoanNotFound, err.Error())
	case errors.Is(err, domain.ErrBookmarkNotFound):
		writeError(w, http.StatusNotFound, codeBookmarkNotFound, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		writeError(w, http.StatusConflict, codeNoCopiesAvailable, err.Error())
	case errors.Is(err, domain.ErrBookHasActiveLoans):
		writeError(w, http.StatusConflict, codeBookHasActiveLoans, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case errors.Is(err, domain.ErrTransient):
		writeError(w, http.StatusServiceUnavailable, codeTransient, "temporary failure, retry the request")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
