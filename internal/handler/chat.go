package handler

import (
	"errors"
	"log"
	"net/http"

	"career-coach-go/internal/service"
)

// ChatHandler AI职业教练对话
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler 创建处理器
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// Chat POST /api/chat
// Body: {"message": "...", "history": [{"role": "user", "content": "..."}]}
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	reply, err := h.service.Reply(r.Context(), req.Message, req.History)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Message is required", "")
	case errors.Is(err, service.ErrChatUnavailable):
		writeError(w, http.StatusServiceUnavailable, "AI chat is not configured", "")
	case err != nil:
		log.Printf("[Chat] Reply failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate reply", "")
	default:
		writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
	}
}
