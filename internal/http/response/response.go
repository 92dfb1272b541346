package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobboard/internal/common"
)

type errorBody struct {
	Error   common.Code       `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps a coded error onto an HTTP status. Only the coded message is
// exposed; the wrapped cause stays in logs.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	body := errorBody{Error: code, Message: "internal error"}
	var coded *common.Error
	if errors.As(err, &coded) {
		body.Message = coded.Message
		body.Fields = coded.Fields
	}
	JSON(w, statusFor(code), body)
}

// Fail reports a failure the company-endpoint way: HTTP 200 with the success
// flag down. The message comes from the coded error when there is one.
func Fail(w http.ResponseWriter, err error) {
	message := "internal error"
	var coded *common.Error
	if errors.As(err, &coded) {
		message = coded.Message
	}
	JSON(w, http.StatusOK, envelope{Success: false, Message: message})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeConflict:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
