package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-coach-go/internal/model"
)

const openRouterChatURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterClient OpenRouter LLM客户端
type OpenRouterClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient HTTPClient
}

// NewOpenRouterClient 创建OpenRouter客户端
func NewOpenRouterClient(apiKey, model string, httpClient HTTPClient) *OpenRouterClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &OpenRouterClient{
		apiKey:     apiKey,
		model:      model,
		endpoint:   openRouterChatURL,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 带系统提示和历史消息的对话补全
func (o *OpenRouterClient) Complete(ctx context.Context, systemPrompt string, messages []model.ChatMessage) (string, error) {
	all := make([]model.ChatMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		all = append(all, model.ChatMessage{Role: "system", Content: systemPrompt})
	}
	all = append(all, messages...)

	jsonBody, err := json.Marshal(chatRequest{Model: o.model, Messages: all})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("X-Title", "Career Coach")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
