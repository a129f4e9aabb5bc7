package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/model"
	"career-coach-go/internal/utils"
)

var (
	// ErrChatUnavailable 未配置LLM
	ErrChatUnavailable = errors.New("chat is not configured")
	// ErrEmptyMessage 消息为空
	ErrEmptyMessage = errors.New("message is required")
)

const (
	maxChatHistory    = 20
	maxMessageLength  = 4000
	coachSystemPrompt = `You are an experienced software career coach.
Give concise, practical advice about skills, portfolios, job search, interviews and career growth.
When the user shares GitHub or LinkedIn analysis results, refer to the concrete numbers and recommendations.
Answer in the language the user writes in.`
)

// ChatService AI职业教练对话
type ChatService struct {
	client fetcher.ChatClient
}

// NewChatService 创建对话服务，client为nil时Reply返回ErrChatUnavailable
func NewChatService(client fetcher.ChatClient) *ChatService {
	return &ChatService{client: client}
}

// Reply 基于历史消息生成回复
func (s *ChatService) Reply(ctx context.Context, message string, history []model.ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if s.client == nil {
		return "", ErrChatUnavailable
	}

	messages := append(sanitizeHistory(history), model.ChatMessage{
		Role:    "user",
		Content: utils.Truncate(message, maxMessageLength),
	})

	reply, err := s.client.Complete(ctx, coachSystemPrompt, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return reply, nil
}

// sanitizeHistory 只保留user/assistant的非空消息，最多保留最近20条
func sanitizeHistory(history []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		content := strings.TrimSpace(msg.Content)
		if content == "" || (role != "user" && role != "assistant") {
			continue
		}
		out = append(out, model.ChatMessage{Role: role, Content: utils.Truncate(content, maxMessageLength)})
	}
	if len(out) > maxChatHistory {
		out = out[len(out)-maxChatHistory:]
	}
	return out
}
