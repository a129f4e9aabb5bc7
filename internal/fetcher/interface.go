package fetcher

import (
	"context"
	"net/http"

	"career-coach-go/internal/model"
)

// HTTPClient HTTP执行接口（测试时可替换）
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GitHubAPI GitHub REST数据获取
type GitHubAPI interface {
	FetchRepositories(ctx context.Context, username string) ([]model.RepositorySummary, error)
	FetchContents(ctx context.Context, owner, repo string) ([]ContentEntry, error)
}

// PageRenderer 渲染网页并返回最终URL和HTML (chromedp / Firecrawl)
type PageRenderer interface {
	Render(ctx context.Context, pageURL string) (*RenderedPage, error)
}

// RenderedPage 渲染结果
type RenderedPage struct {
	FinalURL string
	HTML     string
}

// ChatClient LLM对话客户端 (OpenRouter)
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []model.ChatMessage) (string, error)
}
