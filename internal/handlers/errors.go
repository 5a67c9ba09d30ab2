// Package handlers contains the HTTP handlers for the knowledge-base API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON writes a 200 JSON response.
func writeJSON(w http.ResponseWriter, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(payload)
}

// statusForRetrievalError maps retrieval errors to HTTP status codes:
// vector-store failures are 503, embedding-service failures 502, the rest 500.
func statusForRetrievalError(err error) (int, string) {
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "vector store") || strings.Contains(msg, "failed to search") {
		return http.StatusServiceUnavailable, "Vector store unavailable"
	}
	if strings.Contains(msg, "embed") {
		return http.StatusBadGateway, "Embedding service error"
	}
	return http.StatusInternalServerError, "Failed to process query"
}
