package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"career-coach-go/internal/model"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// GitHubAnalysisRequest POST /api/github-analysis
type GitHubAnalysisRequest struct {
	Username string `json:"username"`
}

// LinkedInAnalysisRequest POST /api/linkedin-analysis
type LinkedInAnalysisRequest struct {
	LinkedInURL string `json:"linkedinUrl"`
}

// ProfileAnalysisRequest POST /api/profile-analysis，两个字段至少一个
type ProfileAnalysisRequest struct {
	Username    string `json:"username"`
	LinkedInURL string `json:"linkedinUrl"`
}

// ChatRequest POST /api/chat
type ChatRequest struct {
	Message string              `json:"message"`
	History []model.ChatMessage `json:"history,omitempty"`
}

// ChatResponse 对话回复
type ChatResponse struct {
	Reply string `json:"reply"`
}

var errInvalidBody = errors.New("invalid request body")

// decodeJSON 解析JSON请求体，空body视为空对象
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}
