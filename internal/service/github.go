package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"career-coach-go/internal/analysis"
	"career-coach-go/internal/cache"
	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/model"
)

// ErrNoRepositories 用户没有非fork的公开仓库
var ErrNoRepositories = errors.New("no repositories found")

// topRepositoryCount 结果中展示的高星仓库数
const topRepositoryCount = 3

// ProgressFunc 进度回调（SSE使用），可为nil
type ProgressFunc func(progress int, action string)

// GitHubService GitHub技能分析
type GitHubService struct {
	api      fetcher.GitHubAPI
	sampler  *ContentSampler
	detector *analysis.Detector
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewGitHubService 创建GitHub服务，c为nil或ttl<=0时不缓存
func NewGitHubService(api fetcher.GitHubAPI, sampler *ContentSampler, detector *analysis.Detector, c cache.Cache, ttl time.Duration) *GitHubService {
	if detector == nil {
		detector = analysis.DefaultDetector()
	}
	return &GitHubService{
		api:      api,
		sampler:  sampler,
		detector: detector,
		cache:    c,
		cacheTTL: ttl,
	}
}

// Analyze 获取仓库 -> 采样 -> 识别技术 -> 打分 -> 生成建议
func (s *GitHubService) Analyze(ctx context.Context, username string, progress ProgressFunc) (*model.SkillAnalysisResult, error) {
	if progress == nil {
		progress = func(int, string) {}
	}
	username = strings.TrimSpace(username)
	cacheID := strings.ToLower(username)

	// 检查缓存
	if s.cacheEnabled() {
		var cached model.SkillAnalysisResult
		hit, err := cache.Lookup(ctx, s.cache, cache.SourceGitHub, cacheID, &cached)
		if err != nil {
			log.Printf("[GitHub] Cache lookup failed for %s: %v", username, err)
		} else if hit {
			log.Printf("[GitHub] Cache hit for %s", username)
			progress(100, "Loaded from cache")
			return &cached, nil
		}
	}

	start := time.Now()

	progress(10, "Fetching repositories")
	repos, err := s.api.FetchRepositories(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", username, err)
	}
	if len(repos) == 0 {
		return nil, ErrNoRepositories
	}

	progress(30, "Sampling repository contents")
	files := s.sampler.Sample(ctx, username, repos)
	// 采样被取消时只拿到部分文件，不打分也不缓存
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis of %s cancelled during sampling: %w", username, err)
	}

	progress(60, "Detecting technologies")
	tally := s.detector.DetectTechnologies(repos, files)

	progress(80, "Scoring skills")
	score := analysis.CalculateSkillScore(repos, tally)

	result := &model.SkillAnalysisResult{
		Username:        username,
		TotalRepos:      len(repos),
		SkillScore:      score,
		Languages:       tally.Languages,
		Frameworks:      tally.Frameworks,
		Databases:       tally.Databases,
		Tools:           tally.Tools,
		TopRepositories: topRepositories(repos, topRepositoryCount),
		Recommendations: analysis.GenerateRecommendations(tally, score),
	}
	for _, repo := range repos {
		result.TotalStars += repo.Stars
		result.TotalForks += repo.Forks
	}

	log.Printf("[GitHub] Analyzed %s: %d repos, %d files, score %d in %v",
		username, len(repos), len(files), score, time.Since(start).Round(time.Millisecond))

	if s.cacheEnabled() {
		if err := cache.Store(ctx, s.cache, cache.SourceGitHub, cacheID, result, s.cacheTTL); err != nil {
			log.Printf("[GitHub] Failed to cache result for %s: %v", username, err)
		}
	}

	return result, nil
}

func (s *GitHubService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// topRepositories 按star降序取前n个，star相同保持原顺序
func topRepositories(repos []model.RepositorySummary, n int) []model.TopRepository {
	sorted := make([]model.RepositorySummary, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	top := make([]model.TopRepository, 0, len(sorted))
	for _, repo := range sorted {
		top = append(top, model.TopRepository{
			Name:        repo.Name,
			Description: repo.Description,
			Stars:       repo.Stars,
			Forks:       repo.Forks,
			Language:    repo.Language,
			URL:         repo.URL,
		})
	}
	return top
}
