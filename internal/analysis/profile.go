package analysis

import (
	"strings"

	"career-coach-go/internal/model"
)

const (
	completenessPoints = 5
	skillsCap          = 30
	experienceCap      = 25
	educationCap       = 15
	certificationCap   = 10
	skillWeight        = 2
	entryWeight        = 5

	// minSkills 技能少于该数量时建议补充
	minSkills = 5
	// minSummaryLength 简介过短视同缺失
	minSummaryLength = 50
)

// LinkedIn 建议文本
const (
	RecommendProfileSummary    = "Write a compelling summary that highlights your expertise, achievements, and career goals."
	RecommendProfileSkills     = "Add more skills to your profile. Aim for at least 5 relevant skills so recruiters can find you."
	RecommendProfileExperience = "Add your work experience with clear titles, companies, and measurable accomplishments."
	RecommendProfileEducation  = "Add your education history, including degrees, bootcamps, or relevant courses."
	RecommendProfileCerts      = "Earn industry certifications (AWS, Google Cloud, Azure, PMP) to validate your skills."
	RecommendProfileActivity   = "Increase your LinkedIn activity by sharing articles, posting project updates, and engaging with your network."
	RecommendProfileGrow       = "Keep developing your profile: more complete profiles receive significantly more recruiter views."
	RecommendProfileGreat      = "Excellent! Your LinkedIn profile is comprehensive and well-maintained. Keep it up to date."
)

// CalculateProfileScore 完整度 + 技能/经历/教育/证书数量，各项封顶后求和
func CalculateProfileScore(p *model.LinkedInProfile) int {
	if p == nil {
		return 0
	}

	score := 0
	for _, field := range []struct{ value, placeholder string }{
		{p.Name, model.PlaceholderName},
		{p.Headline, model.PlaceholderHeadline},
		{p.Location, model.PlaceholderLocation},
		{p.Summary, model.PlaceholderSummary},
	} {
		if isFilled(field.value, field.placeholder) {
			score += completenessPoints
		}
	}

	score += cappedTerm(len(p.Skills), skillWeight, skillsCap)
	score += cappedTerm(len(p.Experience), entryWeight, experienceCap)
	score += cappedTerm(len(p.Education), entryWeight, educationCap)
	score += cappedTerm(len(p.Certifications), entryWeight, certificationCap)

	return clampScore(score)
}

// GenerateProfileRecommendations 与GitHub建议相同的缺失检查模式，结果非空
func GenerateProfileRecommendations(p *model.LinkedInProfile, score int) []string {
	if p == nil {
		p = &model.LinkedInProfile{}
	}

	var recs []string

	summary := strings.TrimSpace(p.Summary)
	if !isFilled(summary, model.PlaceholderSummary) || len(summary) < minSummaryLength {
		recs = append(recs, RecommendProfileSummary)
	}
	if len(p.Skills) < minSkills {
		recs = append(recs, RecommendProfileSkills)
	}
	if len(p.Experience) == 0 {
		recs = append(recs, RecommendProfileExperience)
	}
	if len(p.Education) == 0 {
		recs = append(recs, RecommendProfileEducation)
	}
	if len(p.Certifications) == 0 {
		recs = append(recs, RecommendProfileCerts)
	}
	if p.ActivityLevel == model.ActivityLow {
		recs = append(recs, RecommendProfileActivity)
	}
	if score < scoreThreshold {
		recs = append(recs, RecommendProfileGrow)
	}

	if len(recs) == 0 {
		recs = append(recs, RecommendProfileGreat)
	}
	return recs
}

func isFilled(value, placeholder string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != placeholder
}
