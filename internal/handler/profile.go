package handler

import (
	"errors"
	"net/http"

	"career-coach-go/internal/service"
)

// ProfileHandler GitHub + LinkedIn 组合分析
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler 创建处理器
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Analyze POST /api/profile-analysis
// Body: {"username": "...", "linkedinUrl": "..."}，平台错误放在 githubError / linkedinError 中
func (h *ProfileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req ProfileAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	result, err := h.service.Analyze(r.Context(), req.Username, req.LinkedInURL)
	if err != nil {
		if errors.Is(err, service.ErrNoProfileInput) {
			writeError(w, http.StatusBadRequest, "Username or LinkedIn URL is required", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to analyze profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
