package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"career-coach-go/internal/model"
)

// writeJSON 写JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// writeError 写 {"error": ..., "details": ...}
func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Details: details})
}

// requirePost 非POST请求返回405
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	return false
}
