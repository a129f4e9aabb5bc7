package analysis

import "career-coach-go/internal/model"

// 建议文本
const (
	RecommendFrontend     = "Consider learning a modern frontend framework like React, Vue, or Angular to broaden your full-stack skills."
	RecommendDatabase     = "Add database experience to your projects. Try PostgreSQL for relational data or MongoDB for document storage."
	RecommendContainers   = "Learn containerization with Docker and orchestration with Kubernetes to make your projects easier to deploy."
	RecommendCI           = "Set up CI/CD pipelines with GitHub Actions or similar tools to automate testing and deployment."
	RecommendMoreProjects = "Build more projects and share them publicly to strengthen your portfolio and grow your score."
	RecommendCongratulate = "Great job! Your GitHub profile shows a well-rounded technology stack. Keep building and sharing your work."
)

var (
	frontendFrameworks = []string{"React", "Vue", "Angular", "Svelte", "Next.js"}
	containerTools     = []string{"Docker", "Kubernetes"}
	ciTools            = []string{"GitHub Actions", "GitLab CI", "Jenkins", "Travis CI", "CircleCI"}
)

// scoreThreshold 低于该分数时追加 "build more projects"
const scoreThreshold = 50

// GenerateRecommendations 按固定顺序检查缺失的技术，返回非空建议列表
func GenerateRecommendations(tally model.TechnologyTally, score int) []string {
	var recs []string

	if !containsAny(tally.Frameworks, frontendFrameworks) {
		recs = append(recs, RecommendFrontend)
	}
	if len(tally.Databases) == 0 {
		recs = append(recs, RecommendDatabase)
	}
	if !containsAny(tally.Tools, containerTools) {
		recs = append(recs, RecommendContainers)
	}
	if !containsAny(tally.Tools, ciTools) {
		recs = append(recs, RecommendCI)
	}
	if score < scoreThreshold {
		recs = append(recs, RecommendMoreProjects)
	}

	if len(recs) == 0 {
		recs = append(recs, RecommendCongratulate)
	}
	return recs
}

func containsAny(counts map[string]int, names []string) bool {
	for _, name := range names {
		if counts[name] > 0 {
			return true
		}
	}
	return false
}
