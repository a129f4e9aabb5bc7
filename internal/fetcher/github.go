package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"career-coach-go/internal/model"
)

const defaultGitHubAPIURL = "https://api.github.com"

var (
	// ErrUserNotFound GitHub返回404
	ErrUserNotFound = errors.New("github user not found")
	// ErrRateLimited GitHub返回403/429（匿名每小时60次）
	ErrRateLimited = errors.New("github rate limit exceeded")
)

// APIError 其他非2xx响应
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error: status %d: %s", e.StatusCode, e.Body)
}

// GitHubClient GitHub REST API客户端
type GitHubClient struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// NewGitHubClient 创建GitHub客户端，httpClient为nil时使用30秒超时的默认客户端
func NewGitHubClient(baseURL, token string, httpClient HTTPClient) *GitHubClient {
	if baseURL == "" {
		baseURL = defaultGitHubAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GitHubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// githubRepo /users/{username}/repos 返回的仓库
type githubRepo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Size        int      `json:"size"`
	Topics      []string `json:"topics"`
	HTMLURL     string   `json:"html_url"`
	Fork        bool     `json:"fork"`
}

// ContentEntry /repos/{owner}/{repo}/contents 返回的条目
type ContentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" | "dir" | "symlink" | "submodule"
	Size int64  `json:"size"`
}

// FetchRepositories 获取用户最近更新的100个公开仓库，过滤掉fork
func (c *GitHubClient) FetchRepositories(ctx context.Context, username string) ([]model.RepositorySummary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, url.PathEscape(username))

	var raw []githubRepo
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	repos := make([]model.RepositorySummary, 0, len(raw))
	for _, r := range raw {
		if r.Fork {
			continue
		}
		repos = append(repos, r.toSummary())
	}
	return repos, nil
}

// FetchContents 获取仓库顶层目录列表
func (c *GitHubClient) FetchContents(ctx context.Context, owner, repo string) ([]ContentEntry, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	var entries []ContentEntry
	if err := c.doRequest(ctx, endpoint, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// doRequest 执行GET请求并按状态码分类错误
func (c *GitHubClient) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "career-coach-go")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classifyStatus 404 -> ErrUserNotFound, 403/429 -> ErrRateLimited, 其他非2xx -> *APIError
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

func (r githubRepo) toSummary() model.RepositorySummary {
	summary := model.RepositorySummary{
		ID:     r.ID,
		Name:   r.Name,
		Stars:  r.Stars,
		Forks:  r.Forks,
		Size:   r.Size,
		Topics: r.Topics,
		URL:    r.HTMLURL,
		Fork:   r.Fork,
	}
	if r.Description != nil {
		summary.Description = *r.Description
	}
	if r.Language != nil {
		summary.Language = *r.Language
	}
	return summary
}
