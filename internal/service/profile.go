package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"career-coach-go/internal/model"
)

// ErrNoProfileInput 组合分析既没有用户名也没有LinkedIn URL
var ErrNoProfileInput = errors.New("username or linkedinUrl is required")

// GitHubAnalyzer GitHub分析（由GitHubService实现）
type GitHubAnalyzer interface {
	Analyze(ctx context.Context, username string, progress ProgressFunc) (*model.SkillAnalysisResult, error)
}

// LinkedInAnalyzer LinkedIn分析（由LinkedInService实现）
type LinkedInAnalyzer interface {
	Analyze(ctx context.Context, rawURL string) (*model.LinkedInAnalysisResult, error)
}

// ProfileService 并发执行GitHub和LinkedIn分析
type ProfileService struct {
	github   GitHubAnalyzer
	linkedin LinkedInAnalyzer
}

// NewProfileService 创建组合分析服务
func NewProfileService(github GitHubAnalyzer, linkedin LinkedInAnalyzer) *ProfileService {
	return &ProfileService{github: github, linkedin: linkedin}
}

// Analyze 两个平台并发分析，一个平台失败不会取消另一个；未提供的平台结果和错误都为nil
func (s *ProfileService) Analyze(ctx context.Context, username, linkedinURL string) (*model.CombinedAnalysis, error) {
	username = strings.TrimSpace(username)
	linkedinURL = strings.TrimSpace(linkedinURL)
	if username == "" && linkedinURL == "" {
		return nil, ErrNoProfileInput
	}

	result := &model.CombinedAnalysis{}

	// 平台错误写入结果；只有请求本身被取消时goroutine才返回错误
	var g errgroup.Group

	if username != "" {
		g.Go(func() error {
			res, err := s.github.Analyze(ctx, username, nil)
			if err != nil && ctx.Err() != nil {
				return fmt.Errorf("github analysis cancelled: %w", ctx.Err())
			}
			if err != nil {
				log.Printf("[Profile] GitHub analysis failed for %s: %v", username, err)
				result.GitHubError = ClassifyGitHubError(err)
				return nil
			}
			result.GitHub = res
			return nil
		})
	}

	if linkedinURL != "" {
		g.Go(func() error {
			res, err := s.linkedin.Analyze(ctx, linkedinURL)
			if err != nil && ctx.Err() != nil {
				return fmt.Errorf("linkedin analysis cancelled: %w", ctx.Err())
			}
			if err != nil {
				log.Printf("[Profile] LinkedIn analysis failed for %s: %v", linkedinURL, err)
				result.LinkedInError = ClassifyLinkedInError(err)
				return nil
			}
			result.LinkedIn = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
