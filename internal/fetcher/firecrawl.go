package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const firecrawlScrapeURL = "https://api.firecrawl.dev/v1/scrape"

// FirecrawlRenderer 通过Firecrawl托管渲染页面
type FirecrawlRenderer struct {
	apiKey     string
	endpoint   string
	settle     time.Duration
	httpClient HTTPClient
}

// NewFirecrawlRenderer 创建Firecrawl渲染器，httpClient为nil时使用默认客户端
func NewFirecrawlRenderer(apiKey string, timeout, settle time.Duration, httpClient HTTPClient) *FirecrawlRenderer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &FirecrawlRenderer{
		apiKey:     apiKey,
		endpoint:   firecrawlScrapeURL,
		settle:     settle,
		httpClient: httpClient,
	}
}

type firecrawlRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	WaitFor int      `json:"waitFor,omitempty"` // 等待毫秒数，让JS渲染完成
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		HTML     string `json:"html"`
		Metadata struct {
			SourceURL  string `json:"sourceURL"`
			URL        string `json:"url"`
			StatusCode int    `json:"statusCode"`
		} `json:"metadata"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// Render 获取渲染后的HTML，最终URL取自metadata
func (f *FirecrawlRenderer) Render(ctx context.Context, pageURL string) (*RenderedPage, error) {
	reqBody := firecrawlRequest{
		URL:     pageURL,
		Formats: []string{"html"},
		WaitFor: int(f.settle / time.Millisecond),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firecrawl returned status %d: %s", resp.StatusCode, string(body))
	}

	var fcResp firecrawlResponse
	if err := json.Unmarshal(body, &fcResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !fcResp.Success {
		return nil, fmt.Errorf("firecrawl error: %s", fcResp.Error)
	}

	if fcResp.Data.HTML == "" {
		return nil, errors.New("empty HTML response")
	}

	finalURL := fcResp.Data.Metadata.URL
	if finalURL == "" {
		finalURL = fcResp.Data.Metadata.SourceURL
	}
	if finalURL == "" {
		finalURL = pageURL
	}

	return &RenderedPage{FinalURL: finalURL, HTML: fcResp.Data.HTML}, nil
}
