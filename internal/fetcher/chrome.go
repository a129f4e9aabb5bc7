package fetcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const chromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// ChromeRenderer 用无头Chrome渲染页面，每次请求启动独立浏览器
type ChromeRenderer struct {
	headless bool
	timeout  time.Duration
	settle   time.Duration
}

// NewChromeRenderer 创建Chrome渲染器，timeout为整体导航超时，settle为等待前端渲染的时间
func NewChromeRenderer(headless bool, timeout, settle time.Duration) *ChromeRenderer {
	return &ChromeRenderer{
		headless: headless,
		timeout:  timeout,
		settle:   settle,
	}
}

// Render 打开页面并返回最终URL和HTML
func (r *ChromeRenderer) Render(ctx context.Context, pageURL string) (*RenderedPage, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(chromeUserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	start := time.Now()
	var finalURL, html string
	err := chromedp.Run(timeoutCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": "en-US,en;q=0.9"}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.settle),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome navigation failed: %w", err)
	}

	log.Printf("[LinkedIn] Rendered %s in %v (final url %s)", pageURL, time.Since(start).Round(time.Millisecond), finalURL)
	return &RenderedPage{FinalURL: finalURL, HTML: html}, nil
}
