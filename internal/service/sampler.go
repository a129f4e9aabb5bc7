package service

import (
	"context"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"career-coach-go/internal/analysis"
	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/model"
)

// MaxSampledRepos 每次分析最多读取的仓库目录数
const MaxSampledRepos = 3

// ContentSampler 顺序读取前几个仓库的顶层目录
// 单个仓库失败只记日志，不影响整体分析
type ContentSampler struct {
	api   fetcher.GitHubAPI
	limit int
	delay time.Duration
}

// NewContentSampler 创建采样器，limit超出1..3时取3
func NewContentSampler(api fetcher.GitHubAPI, limit int, delay time.Duration) *ContentSampler {
	if limit <= 0 || limit > MaxSampledRepos {
		limit = MaxSampledRepos
	}
	if delay < 0 {
		delay = 0
	}
	return &ContentSampler{api: api, limit: limit, delay: delay}
}

// sampleOutcome 单个仓库的采样结果，err非nil表示失败
type sampleOutcome struct {
	repo  string
	files []model.FileSample
	err   error
}

// Sample 返回采样到的文件列表，ctx取消时返回已收集的部分
func (s *ContentSampler) Sample(ctx context.Context, owner string, repos []model.RepositorySummary) []model.FileSample {
	if len(repos) > s.limit {
		repos = repos[:s.limit]
	}

	outcomes := make([]sampleOutcome, 0, len(repos))
	for i, repo := range repos {
		if i > 0 && !s.wait(ctx) {
			log.Printf("[Sampler] Cancelled after %d/%d repos: %v", i, len(repos), ctx.Err())
			break
		}
		outcomes = append(outcomes, s.sampleRepo(ctx, owner, repo.Name))
		if ctx.Err() != nil {
			break
		}
	}

	return collectSamples(owner, outcomes)
}

// wait 两次请求之间的礼貌间隔，ctx取消时返回false
func (s *ContentSampler) wait(ctx context.Context) bool {
	if s.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *ContentSampler) sampleRepo(ctx context.Context, owner, repo string) sampleOutcome {
	entries, err := s.api.FetchContents(ctx, owner, repo)
	if err != nil {
		return sampleOutcome{repo: repo, err: err}
	}

	files := make([]model.FileSample, 0, len(entries))
	for _, entry := range entries {
		ext := analysis.FileExtension(entry.Name)
		files = append(files, model.FileSample{
			Name:      entry.Name,
			Extension: ext,
			Language:  analysis.LanguageFromExtension(ext),
			Size:      entry.Size,
		})
	}
	return sampleOutcome{repo: repo, files: files}
}

// collectSamples 丢弃失败的仓库（只记日志），合并成功的文件列表
func collectSamples(owner string, outcomes []sampleOutcome) []model.FileSample {
	var (
		samples   []model.FileSample
		totalSize int64
		failed    int
	)
	for _, outcome := range outcomes {
		if outcome.err != nil {
			failed++
			log.Printf("[Sampler] Skipping %s/%s: %v", owner, outcome.repo, outcome.err)
			continue
		}
		for _, f := range outcome.files {
			totalSize += f.Size
		}
		samples = append(samples, outcome.files...)
	}

	log.Printf("[Sampler] %s: sampled %d entries (%s) from %d repos, %d failed",
		owner, len(samples), humanize.Bytes(uint64(totalSize)), len(outcomes)-failed, failed)
	return samples
}
