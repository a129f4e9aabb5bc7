package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"career-coach-go/internal/analysis"
	"career-coach-go/internal/cache"
	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/model"
)

// ProfileScraper LinkedIn档案抓取
type ProfileScraper interface {
	Scrape(ctx context.Context, profileURL string) (*fetcher.ScrapeResult, error)
}

// LinkedInService LinkedIn档案分析
type LinkedInService struct {
	scraper  ProfileScraper
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewLinkedInService 创建LinkedIn服务，c为nil或ttl<=0时不缓存
func NewLinkedInService(scraper ProfileScraper, c cache.Cache, ttl time.Duration) *LinkedInService {
	return &LinkedInService{
		scraper:  scraper,
		cache:    c,
		cacheTTL: ttl,
	}
}

// Analyze 抓取档案并计算完整度分数和建议
// 返回 fetcher.ErrInvalidProfileURL / ErrAuthRequired / ErrBlocked 或包装后的渲染错误
func (s *LinkedInService) Analyze(ctx context.Context, rawURL string) (*model.LinkedInAnalysisResult, error) {
	profileURL, err := fetcher.NormalizeLinkedInURL(rawURL)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		var cached model.LinkedInAnalysisResult
		hit, err := cache.Lookup(ctx, s.cache, cache.SourceLinkedIn, profileURL, &cached)
		if err != nil {
			log.Printf("[LinkedIn] Cache lookup failed for %s: %v", profileURL, err)
		} else if hit {
			log.Printf("[LinkedIn] Cache hit for %s", profileURL)
			return &cached, nil
		}
	}

	start := time.Now()
	scraped, err := s.scraper.Scrape(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", profileURL, err)
	}

	score := analysis.CalculateProfileScore(scraped.Profile)
	result := &model.LinkedInAnalysisResult{
		LinkedInProfile: *scraped.Profile,
		ProfileURL:      profileURL,
		SkillScore:      score,
		Recommendations: analysis.GenerateProfileRecommendations(scraped.Profile, score),
		IsPlaceholder:   scraped.Placeholder,
	}

	log.Printf("[LinkedIn] Analyzed %s (id %q): score %d, placeholder=%v in %v",
		profileURL, fetcher.ExtractLinkedInID(profileURL), score, scraped.Placeholder, time.Since(start).Round(time.Millisecond))

	// 占位结果不缓存，下次请求重新抓取
	if s.cacheEnabled() && !scraped.Placeholder {
		if err := cache.Store(ctx, s.cache, cache.SourceLinkedIn, profileURL, result, s.cacheTTL); err != nil {
			log.Printf("[LinkedIn] Failed to cache result for %s: %v", profileURL, err)
		}
	}

	return result, nil
}

func (s *LinkedInService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}
