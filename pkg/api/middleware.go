package api

import (
	"encoding/json"
	"net/http"

	"github.com/segmentio/ksuid"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// apiKeyMiddleware validates the X-API-Key header. An empty expected key
// disables authentication.
func apiKeyMiddleware(expectedKey string, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if apiKey != expectedKey {
				if metrics != nil {
					metrics.RecordAuthRequest(false)
				}
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			if metrics != nil {
				metrics.RecordAuthRequest(true)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDMiddleware tags every request and response with an X-Request-ID,
// minting a KSUID when the client did not send one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = ksuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// sendCodecError maps a codec error onto an HTTP status: malformed input is
// the client's fault, everything else is ours
func sendCodecError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if kind, ok := fon.KindOf(err); ok && kind != fon.ErrIO {
		status = http.StatusBadRequest
	}
	sendError(w, err.Error(), status)
}
