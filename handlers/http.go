package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"llamabot/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, errorResponse{Error: message})
}

// writeDomainError maps the core error taxonomy to HTTP status codes.
// Anything outside the taxonomy is an infrastructure failure the caller may
// retry.
func writeDomainError(w http.ResponseWriter, err error, infraMessage string) {
	switch {
	case core.IsValidationError(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case core.IsDuplicateInScopeError(err):
		writeJSONError(w, http.StatusConflict, err.Error())
	case core.IsNotFoundError(err):
		writeJSONError(w, http.StatusNotFound, "not found")
	case core.IsDisabledError(err):
		writeJSONError(w, http.StatusForbidden, "disabled")
	default:
		log.Printf("❌ %s: %v", infraMessage, err)
		writeJSONError(w, http.StatusInternalServerError, infraMessage)
	}
}

// parseListFilters reads the optional guildId and enabled query parameters
// shared by the listing endpoints
func parseListFilters(r *http.Request) (guildID *string, enabled *bool) {
	if v := r.URL.Query().Get("guildId"); v != "" {
		guildID = &v
	}
	switch r.URL.Query().Get("enabled") {
	case "true":
		t := true
		enabled = &t
	case "false":
		f := false
		enabled = &f
	}
	return guildID, enabled
}
