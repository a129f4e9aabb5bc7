package analysis

import "career-coach-go/internal/model"

// 各项得分上限
const (
	MaxScore     = 100
	repoScoreCap = 50
	starScoreCap = 30
	forkScoreCap = 20
	techScoreCap = 30
	repoWeight   = 5
	starWeight   = 2
	forkWeight   = 1
	techWeight   = 3
)

// CalculateSkillScore 仓库数、star、fork、技术多样性四项分别封顶后求和，总分不超过100
func CalculateSkillScore(repos []model.RepositorySummary, tally model.TechnologyTally) int {
	var stars, forks int
	for _, repo := range repos {
		stars += repo.Stars
		forks += repo.Forks
	}

	score := cappedTerm(len(repos), repoWeight, repoScoreCap) +
		cappedTerm(stars, starWeight, starScoreCap) +
		cappedTerm(forks, forkWeight, forkScoreCap) +
		cappedTerm(tally.DistinctTechnologies(), techWeight, techScoreCap)

	return clampScore(score)
}

// cappedTerm min(count*weight, cap)，负数按0计
func cappedTerm(count, weight, limit int) int {
	if count <= 0 {
		return 0
	}
	// 先比较再相乘，避免大数溢出
	if count >= (limit+weight-1)/weight {
		return limit
	}
	return count * weight
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
