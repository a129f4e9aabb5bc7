package model

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PlatformError 组合分析中单个平台的错误
type PlatformError struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CombinedAnalysis GitHub + LinkedIn 组合分析结果
type CombinedAnalysis struct {
	GitHub        *SkillAnalysisResult    `json:"github"`
	GitHubError   *PlatformError          `json:"githubError"`
	LinkedIn      *LinkedInAnalysisResult `json:"linkedin"`
	LinkedInError *PlatformError          `json:"linkedinError"`
}

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// AnalysisProgress SSE推送的分析状态
type AnalysisProgress struct {
	Status        string      `json:"status"`         // "analyzing" | "completed" | "error" | "heartbeat"
	Username      string      `json:"username"`       // GitHub用户名
	Overall       int         `json:"overall"`        // 整体进度 0-100
	CurrentAction string      `json:"current_action"` // 当前动作
	Result        interface{} `json:"result,omitempty"`
	ErrorStatus   int         `json:"error_status,omitempty"`
	Error         string      `json:"error,omitempty"`
}
