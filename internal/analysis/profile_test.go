package analysis

import (
	"reflect"
	"strings"
	"testing"

	"career-coach-go/internal/model"
)

func fullProfile() *model.LinkedInProfile {
	return &model.LinkedInProfile{
		Name:     "Ada Lovelace",
		Headline: "Staff Engineer at Analytical Engines",
		Location: "London, United Kingdom",
		Summary:  strings.Repeat("Building reliable distributed systems. ", 3),
		Skills:   []string{"Go", "Kubernetes", "PostgreSQL", "gRPC", "Terraform", "AWS", "Leadership", "Mentoring", "Kafka", "Redis", "Docker", "Linux", "Rust", "Python", "SQL", "CI/CD"},
		Experience: []model.ExperienceEntry{
			{Title: "Staff Engineer", Company: "Analytical Engines"},
			{Title: "Senior Engineer", Company: "Difference Co"},
			{Title: "Engineer", Company: "Babbage Labs"},
			{Title: "Intern", Company: "Royal Society"},
			{Title: "Contractor", Company: "Self"},
		},
		Education: []model.EducationEntry{
			{School: "University of London"},
			{School: "Open University"},
			{School: "Coursera"},
		},
		Certifications: []model.CertificationEntry{
			{Name: "CKA"},
			{Name: "AWS Solutions Architect"},
		},
		ActivityLevel: model.ActivityHigh,
	}
}

func TestCalculateProfileScore(t *testing.T) {
	testCases := []struct {
		name    string
		profile *model.LinkedInProfile
		want    int
	}{
		{"nil profile", nil, 0},
		{"empty profile", &model.LinkedInProfile{}, 0},
		{"full profile", fullProfile(), 100},
		// placeholders carry no completeness points: 3 skills*2 + 1 exp*5 + 1 edu*5
		{"placeholder profile", model.PlaceholderProfile(), 16},
		{"fields only", &model.LinkedInProfile{Name: "A", Headline: "B", Location: "C", Summary: "D"}, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateProfileScore(tc.profile); got != tc.want {
				t.Errorf("CalculateProfileScore() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCalculateProfileScore_Caps(t *testing.T) {
	p := fullProfile()
	p.Skills = append(p.Skills, p.Skills...)
	p.Experience = append(p.Experience, p.Experience...)
	p.Certifications = append(p.Certifications, p.Certifications...)

	if got := CalculateProfileScore(p); got != 100 {
		t.Errorf("CalculateProfileScore() = %d, want 100", got)
	}
}

func TestGenerateProfileRecommendations(t *testing.T) {
	recs := GenerateProfileRecommendations(fullProfile(), 100)
	if !reflect.DeepEqual(recs, []string{RecommendProfileGreat}) {
		t.Errorf("expected congratulations for complete profile, got %v", recs)
	}

	empty := &model.LinkedInProfile{ActivityLevel: model.ActivityLow}
	recs = GenerateProfileRecommendations(empty, CalculateProfileScore(empty))
	want := []string{
		RecommendProfileSummary,
		RecommendProfileSkills,
		RecommendProfileExperience,
		RecommendProfileEducation,
		RecommendProfileCerts,
		RecommendProfileActivity,
		RecommendProfileGrow,
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("GenerateProfileRecommendations() = %v, want %v", recs, want)
	}

	if recs := GenerateProfileRecommendations(nil, 0); len(recs) == 0 {
		t.Error("expected recommendations for nil profile")
	}
}
