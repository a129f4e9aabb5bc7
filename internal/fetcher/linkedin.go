package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"career-coach-go/internal/model"
)

var (
	// ErrAuthRequired 页面被重定向到登录/注册页
	ErrAuthRequired = errors.New("linkedin requires authentication")
	// ErrBlocked 页面返回了反爬验证
	ErrBlocked = errors.New("linkedin blocked the request")
	// ErrInvalidProfileURL URL无法解析
	ErrInvalidProfileURL = errors.New("invalid linkedin profile url")
)

// 登录墙路径（按URL第一段匹配，checkpoint按第二段区分）
var authPathSegments = map[string]bool{
	"login":    true,
	"signup":   true,
	"authwall": true,
	"uas":      true,
}

// 反爬验证页只看页面结构，不看正文
var (
	challengeHTMLMarkers = []string{
		`id="captcha-internal"`,
		`id="challenge-form"`,
		`class="cf-challenge`,
		"<title>security verification | linkedin</title>",
	}
	authHTMLMarkers = []string{
		"<title>sign up | linkedin</title>",
		"<title>linkedin login",
		"<title>sign in | linkedin</title>",
	}
)

// LinkedInScraper 渲染并解析LinkedIn公开档案
type LinkedInScraper struct {
	renderer PageRenderer
	parse    func(html string) (*model.LinkedInProfile, error)
}

// ScrapeResult 抓取结果
type ScrapeResult struct {
	Profile     *model.LinkedInProfile
	Placeholder bool
	FinalURL    string
}

// NewLinkedInScraper 创建LinkedIn抓取器
func NewLinkedInScraper(renderer PageRenderer) *LinkedInScraper {
	return &LinkedInScraper{
		renderer: renderer,
		parse:    ParseLinkedInProfile,
	}
}

// Scrape 渲染页面，识别登录墙/反爬，再抽取字段
// 抽取阶段出现意外错误时返回占位档案，渲染失败和登录墙直接返回错误
func (s *LinkedInScraper) Scrape(ctx context.Context, profileURL string) (*ScrapeResult, error) {
	page, err := s.renderer.Render(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to render profile page: %w", err)
	}

	if err := ClassifyPage(page); err != nil {
		log.Printf("[LinkedIn] %s rejected: %v (final url %s)", profileURL, err, page.FinalURL)
		return nil, err
	}

	profile, err := s.extract(page.HTML)
	if err != nil {
		log.Printf("[LinkedIn] Extraction failed for %s, using placeholder: %v", profileURL, err)
		return &ScrapeResult{
			Profile:     model.PlaceholderProfile(),
			Placeholder: true,
			FinalURL:    page.FinalURL,
		}, nil
	}

	return &ScrapeResult{Profile: profile, FinalURL: page.FinalURL}, nil
}

// extract 把解析panic转成error
func (s *LinkedInScraper) extract(html string) (profile *model.LinkedInProfile, err error) {
	defer func() {
		if r := recover(); r != nil {
			profile = nil
			err = fmt.Errorf("extraction panic: %v", r)
		}
	}()

	profile, err = s.parse(html)
	if err == nil && profile == nil {
		err = errors.New("extraction returned no profile")
	}
	return profile, err
}

// ClassifyPage 根据最终URL和HTML识别登录墙和反爬页
func ClassifyPage(page *RenderedPage) error {
	if err := classifyPath(page.FinalURL); err != nil {
		return err
	}

	html := strings.ToLower(page.HTML)
	for _, marker := range challengeHTMLMarkers {
		if strings.Contains(html, marker) {
			return ErrBlocked
		}
	}
	for _, marker := range authHTMLMarkers {
		if strings.Contains(html, marker) {
			return ErrAuthRequired
		}
	}
	return nil
}

// classifyPath 只比较完整的路径段，/in/loginov 之类的档案不受影响
func classifyPath(finalURL string) error {
	u, err := url.Parse(finalURL)
	if err != nil {
		return nil
	}
	segments := strings.Split(strings.Trim(strings.ToLower(u.Path), "/"), "/")

	switch first := segments[0]; {
	case first == "captcha":
		return ErrBlocked
	case first == "checkpoint":
		if len(segments) > 1 && segments[1] == "challenge" {
			return ErrBlocked
		}
		return ErrAuthRequired
	case authPathSegments[first]:
		return ErrAuthRequired
	}
	return nil
}

// NormalizeLinkedInURL 去空白，无scheme时补https://；只接受linkedin.com及其子域名
func NormalizeLinkedInURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidProfileURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalidProfileURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidProfileURL
	}
	if u.User != nil || u.Port() != "" || !isLinkedInHost(u.Hostname()) {
		return "", ErrInvalidProfileURL
	}
	return u.String(), nil
}

func isLinkedInHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

// ExtractLinkedInID 从URL中提取LinkedIn ID
func ExtractLinkedInID(linkedinURL string) string {
	if !strings.Contains(linkedinURL, "linkedin.com/in/") {
		return ""
	}
	parts := strings.Split(linkedinURL, "linkedin.com/in/")
	if len(parts) < 2 {
		return ""
	}
	return strings.Split(strings.Split(parts[1], "?")[0], "/")[0]
}
