package handler

import (
	"log"
	"net/http"
	"strings"

	"career-coach-go/internal/service"
	"career-coach-go/internal/sse"
)

// GitHubHandler GitHub分析HTTP处理器
type GitHubHandler struct {
	service *service.GitHubService
}

// NewGitHubHandler 创建处理器
func NewGitHubHandler(svc *service.GitHubService) *GitHubHandler {
	return &GitHubHandler{service: svc}
}

// Analyze POST /api/github-analysis
// Body: {"username": "octocat"}
func (h *GitHubHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	username, ok := h.parseUsername(w, r)
	if !ok {
		return
	}

	result, err := h.service.Analyze(r.Context(), username, nil)
	if err != nil {
		pe := service.ClassifyGitHubError(err)
		log.Printf("[GitHub] Analysis failed for %s (%d): %v", username, pe.Status, err)
		writeError(w, pe.Status, pe.Error, "")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeSSE POST /api/github-analysis/sse
// 推送 fetching -> sampling -> detecting -> scoring -> completed
func (h *GitHubHandler) AnalyzeSSE(w http.ResponseWriter, r *http.Request) {
	username, ok := h.parseUsername(w, r)
	if !ok {
		return
	}

	// 创建SSE writer
	writer, err := sse.NewWriter(w, username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Streaming not supported", "")
		return
	}
	defer writer.Close()

	log.Printf("[GitHub] Starting SSE analysis for: %s", username)

	result, err := h.service.Analyze(r.Context(), username, func(progress int, action string) {
		writer.SetAction(progress, action)
	})
	if err != nil {
		pe := service.ClassifyGitHubError(err)
		log.Printf("[GitHub] SSE analysis failed for %s (%d): %v", username, pe.Status, err)
		writer.SendError(pe.Status, pe.Error)
		return
	}

	writer.SendResult(result)
	log.Printf("[GitHub] SSE analysis completed for: %s", username)
}

func (h *GitHubHandler) parseUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !requirePost(w, r) {
		return "", false
	}

	var req GitHubAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return "", false
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, service.MsgUsernameRequired, "")
		return "", false
	}
	return username, true
}

