package response

import (
	"encoding/json"
	"net/http"

	apperror "github.com/clubly/clubly/domain/error"
)

type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, status bool, message string, code string, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	envelope := Envelope{
		Status:  status,
		Message: message,
		Code:    code,
		Data:    data,
	}

	json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, true, message, "", data)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, false, message, "", nil)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func UnprocessableEntity(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// FromError maps a catalog error to its HTTP status. Unrecognized
// errors become an opaque 500 so internal failure detail never leaks.
func FromError(w http.ResponseWriter, err error) {
	code := apperror.CodeOf(err)
	status := statusFor(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	WriteJSON(w, status, false, message, string(code), nil)
}

func statusFor(code apperror.ErrorCode) int {
	switch code {
	case apperror.ErrCodeInvalidCredentials, apperror.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case apperror.ErrCodeAccountSuspended:
		return http.StatusForbidden
	case apperror.ErrCodeTooManyAttempts:
		return http.StatusTooManyRequests
	case apperror.ErrCodeUserNotFound, apperror.ErrCodeEventNotFound:
		return http.StatusNotFound
	case apperror.ErrCodeNoCreditAvailable:
		return http.StatusPaymentRequired
	case apperror.ErrCodeInvalidRequest, apperror.ErrCodeInvalidCreditCode,
		apperror.ErrCodeInvalidStatus, apperror.ErrCodeMissingReason,
		apperror.ErrCodeUnknownActionCode, apperror.ErrCodeCapacityTooLarge:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
