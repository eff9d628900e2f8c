package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/shopkit/shop-services/internal/apperr"
	"go.uber.org/zap"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Status: statusSuccess, Message: message, Data: data})
}

func respondInvalid(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Response{Status: statusError, Message: message})
}

// respondError maps each error kind to its status code. Remote and
// unexpected failures keep their detail server-side: the client gets a
// generic message, the full error goes to the log.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, generic string) {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		writeJSON(w, http.StatusNotFound, Response{Status: statusError, Message: err.Error()})
	case apperr.Invalid:
		writeJSON(w, http.StatusBadRequest, Response{Status: statusError, Message: err.Error()})
	default: // Remote and Unexpected
		log.Error(generic, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{Status: statusError, Message: generic})
	}
}
