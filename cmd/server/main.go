package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"career-coach-go/config"
	"career-coach-go/internal/analysis"
	"career-coach-go/internal/cache"
	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/handler"
	"career-coach-go/internal/service"
)

func main() {
	// 加载 .env 文件（如果存在）
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.GithubToken == "" {
		log.Println("Warning: GITHUB_TOKEN not configured, GitHub requests are limited to 60/hour")
	}
	if cfg.OpenRouterKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY not configured, /api/chat will return 503")
	}

	detector, err := analysis.LoadDetector(cfg.TechPatternsFile)
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}

	// 结果缓存（CACHE_TTL>0时启用）：PostgreSQL > SQLite > 内存
	resultCache := newCache(cfg)
	var janitor *cache.Janitor
	if resultCache != nil {
		janitor, err = cache.NewJanitor(resultCache, cfg.CacheCleanSchedule)
		if err != nil {
			log.Printf("Warning: cache cleanup disabled: %v", err)
		} else {
			janitor.Start()
		}
	}

	// 创建GitHub服务
	githubAPI := fetcher.NewGitHubClient(cfg.GithubAPIURL, cfg.GithubToken, nil)
	sampler := service.NewContentSampler(githubAPI, cfg.SampleRepoLimit, cfg.SampleDelay)
	githubService := service.NewGitHubService(githubAPI, sampler, detector, resultCache, cfg.CacheTTL)

	// 创建LinkedIn服务
	scraper := fetcher.NewLinkedInScraper(newRenderer(cfg))
	linkedinService := service.NewLinkedInService(scraper, resultCache, cfg.CacheTTL)

	profileService := service.NewProfileService(githubService, linkedinService)

	// 未配置OpenRouter时client保持nil接口
	var chatClient fetcher.ChatClient
	if cfg.OpenRouterKey != "" {
		chatClient = fetcher.NewOpenRouterClient(cfg.OpenRouterKey, cfg.OpenRouterModel, nil)
	}
	chatService := service.NewChatService(chatClient)

	// 创建处理器
	githubHandler := handler.NewGitHubHandler(githubService)
	linkedinHandler := handler.NewLinkedInHandler(linkedinService)
	profileHandler := handler.NewProfileHandler(profileService)
	chatHandler := handler.NewChatHandler(chatService)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/api/github-analysis", githubHandler.Analyze)
	mux.HandleFunc("/api/github-analysis/sse", githubHandler.AnalyzeSSE)
	mux.HandleFunc("/api/linkedin-analysis", linkedinHandler.Analyze)
	mux.HandleFunc("/api/profile-analysis", profileHandler.Analyze)
	mux.HandleFunc("/api/chat", chatHandler.Chat)

	// CORS中间件
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsMiddleware(handler.WithRequestID(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[Server] Starting on port %s (linkedin renderer: %s, cache ttl: %v)", cfg.Port, cfg.LinkedInRenderer, cfg.CacheTTL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
	if janitor != nil {
		janitor.Stop()
	}
	if resultCache != nil {
		resultCache.Close()
	}
}

// newCache 按配置选择缓存后端，未启用时返回nil
func newCache(cfg *config.Config) cache.Cache {
	if !cfg.CacheEnabled() {
		log.Println("CACHE_TTL not configured, result caching disabled")
		return nil
	}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pg, err := cache.NewPostgresCache(ctx, cfg.DatabaseURL)
		if err == nil {
			log.Println("Using PostgreSQL cache")
			return pg
		}
		log.Printf("Warning: Failed to connect to PostgreSQL, falling back: %v", err)
	}

	if cfg.SQLitePath != "" {
		sqlite, err := cache.NewSQLiteCache(cfg.SQLitePath)
		if err == nil {
			log.Printf("Using SQLite cache at %s", cfg.SQLitePath)
			return sqlite
		}
		log.Printf("Warning: Failed to open SQLite cache, using memory cache: %v", err)
	}

	log.Println("Using memory cache")
	return cache.NewMemoryCache()
}

// newRenderer LINKEDIN_RENDERER=firecrawl 且配置了key时使用Firecrawl，否则使用本地Chrome
func newRenderer(cfg *config.Config) fetcher.PageRenderer {
	if cfg.LinkedInRenderer == "firecrawl" {
		if cfg.FirecrawlKey != "" {
			return fetcher.NewFirecrawlRenderer(cfg.FirecrawlKey, cfg.LinkedInTimeout, cfg.LinkedInSettle, nil)
		}
		log.Println("Warning: FIRECRAWL_API_KEY not configured, falling back to chromedp")
	}
	return fetcher.NewChromeRenderer(cfg.ChromeHeadless, cfg.LinkedInTimeout, cfg.LinkedInSettle)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
