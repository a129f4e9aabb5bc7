package model

// ActivityLevel 活跃度
type ActivityLevel string

const (
	ActivityHigh   ActivityLevel = "High"
	ActivityMedium ActivityLevel = "Medium"
	ActivityLow    ActivityLevel = "Low"
)

// 抽取失败时使用的占位文本
const (
	PlaceholderName     = "LinkedIn User"
	PlaceholderHeadline = "Professional"
	PlaceholderLocation = "Location not available"
	PlaceholderSummary  = "Summary not available"
)

// ExperienceEntry 工作经历
type ExperienceEntry struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration,omitempty"`
}

// EducationEntry 教育经历
type EducationEntry struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Period string `json:"period,omitempty"`
}

// CertificationEntry 证书
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// LinkedInProfile 从页面抽取的档案（尽力而为，字段可能是占位文本）
type LinkedInProfile struct {
	Name           string               `json:"name"`
	Headline       string               `json:"headline"`
	Location       string               `json:"location"`
	Summary        string               `json:"summary"`
	Skills         []string             `json:"skills"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	ActivityLevel  ActivityLevel        `json:"activityLevel"`
	Topics         []string             `json:"topics"`
}

// PlaceholderProfile 固定的占位档案，抽取出现意外错误时返回
func PlaceholderProfile() *LinkedInProfile {
	return &LinkedInProfile{
		Name:     PlaceholderName,
		Headline: PlaceholderHeadline,
		Location: PlaceholderLocation,
		Summary:  PlaceholderSummary,
		Skills:   []string{"Communication", "Leadership", "Problem Solving"},
		Experience: []ExperienceEntry{
			{Title: "Position not available", Company: "Company not available"},
		},
		Education: []EducationEntry{
			{School: "Education not available"},
		},
		Certifications: []CertificationEntry{},
		ActivityLevel:  ActivityMedium,
		Topics:         []string{"Professional Development", "Networking"},
	}
}

// LinkedInAnalysisResult LinkedIn分析结果
type LinkedInAnalysisResult struct {
	LinkedInProfile
	ProfileURL      string   `json:"profileUrl"`
	SkillScore      int      `json:"skillScore"`
	Recommendations []string `json:"recommendations"`
	IsPlaceholder   bool     `json:"isPlaceholder"`
}
