package handler

import (
	"log"
	"net/http"
	"strings"

	"career-coach-go/internal/service"
)

// LinkedInHandler LinkedIn分析HTTP处理器
type LinkedInHandler struct {
	service *service.LinkedInService
}

// NewLinkedInHandler 创建处理器
func NewLinkedInHandler(svc *service.LinkedInService) *LinkedInHandler {
	return &LinkedInHandler{service: svc}
}

// Analyze POST /api/linkedin-analysis
// Body: {"linkedinUrl": "linkedin.com/in/xxx"}，无scheme时补https://
func (h *LinkedInHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req LinkedInAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	linkedinURL := strings.TrimSpace(req.LinkedInURL)
	if linkedinURL == "" {
		writeError(w, http.StatusBadRequest, service.MsgLinkedInURLRequired, "linkedinUrl must be a non-empty string")
		return
	}

	result, err := h.service.Analyze(r.Context(), linkedinURL)
	if err != nil {
		pe := service.ClassifyLinkedInError(err)
		log.Printf("[LinkedIn] Analysis failed for %s (%d): %v", linkedinURL, pe.Status, err)
		writeError(w, pe.Status, pe.Error, pe.Details)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
