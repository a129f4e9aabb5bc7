package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxSampleRepos GitHub匿名配额只有60次/小时，采样仓库数上限
	MaxSampleRepos = 3

	minLinkedInTimeout = 30 * time.Second
	maxLinkedInTimeout = 60 * time.Second
)

// Config 应用配置
type Config struct {
	Port string

	GithubToken      string
	GithubAPIURL     string
	SampleRepoLimit  int
	SampleDelay      time.Duration
	TechPatternsFile string

	LinkedInRenderer string // "chromedp" 或 "firecrawl"
	FirecrawlKey     string
	ChromeHeadless   bool
	LinkedInTimeout  time.Duration
	LinkedInSettle   time.Duration

	OpenRouterKey   string
	OpenRouterModel string

	CacheTTL           time.Duration // 0 表示不缓存
	DatabaseURL        string
	SQLitePath         string
	CacheCleanSchedule string
}

// Load 从环境变量加载配置
func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GithubToken:        getEnv("GITHUB_TOKEN", ""),
		GithubAPIURL:       strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		SampleRepoLimit:    getEnvInt("SAMPLE_REPO_LIMIT", MaxSampleRepos),
		SampleDelay:        getEnvDuration("SAMPLE_DELAY", 100*time.Millisecond),
		TechPatternsFile:   getEnv("TECH_PATTERNS_FILE", ""),
		LinkedInRenderer:   strings.ToLower(getEnv("LINKEDIN_RENDERER", "chromedp")),
		FirecrawlKey:       getEnv("FIRECRAWL_API_KEY", ""),
		ChromeHeadless:     getEnvBool("CHROME_HEADLESS", true),
		LinkedInTimeout:    getEnvDuration("LINKEDIN_TIMEOUT", 45*time.Second),
		LinkedInSettle:     getEnvDuration("LINKEDIN_SETTLE", 3*time.Second),
		OpenRouterKey:      getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "google/gemini-2.5-flash"),
		CacheTTL:           getEnvDuration("CACHE_TTL", 0),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", ""),
		CacheCleanSchedule: getEnv("CACHE_CLEAN_SCHEDULE", "@every 1h"),
	}

	// 采样数量限制在 1..3
	if cfg.SampleRepoLimit < 1 || cfg.SampleRepoLimit > MaxSampleRepos {
		cfg.SampleRepoLimit = MaxSampleRepos
	}
	if cfg.SampleDelay < 0 {
		cfg.SampleDelay = 0
	}

	// 导航超时限制在 30s..60s
	if cfg.LinkedInTimeout < minLinkedInTimeout {
		cfg.LinkedInTimeout = minLinkedInTimeout
	}
	if cfg.LinkedInTimeout > maxLinkedInTimeout {
		cfg.LinkedInTimeout = maxLinkedInTimeout
	}

	return cfg
}

// CacheEnabled 是否启用结果缓存
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
