package fetcher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"career-coach-go/internal/model"
)

const publicProfileHTML = `<html>
<head>
  <title>Ada Lovelace - Staff Engineer | LinkedIn</title>
  <meta property="og:description" content="Building engines. #ignored">
</head>
<body>
  <section class="top-card-layout">
    <h1 class="top-card-layout__title">  Ada
      Lovelace </h1>
    <h2 class="top-card-layout__headline">Staff Engineer at Analytical Engines</h2>
    <div class="top-card-layout__first-subline">
      <span class="top-card__subline-item">London, England, United Kingdom</span>
    </div>
  </section>
  <section class="summary">
    <div class="core-section-container__content"><p>I build reliable systems. #golang #distributed-systems</p></div>
  </section>
  <section class="experience"><ul>
    <li class="experience-item">
      <h3 class="experience-item__title">Staff Engineer</h3>
      <h4 class="experience-item__subtitle">Analytical Engines</h4>
      <span class="date-range">2020 - Present</span>
    </li>
    <li class="experience-item">
      <h3>Engineer</h3>
      <h4>Babbage Labs</h4>
      <span class="date-range">2015 - 2020</span>
    </li>
  </ul></section>
  <section class="education"><ul>
    <li class="education__list-item">
      <h3>University of London</h3>
      <h4>BSc Mathematics</h4>
      <span class="date-range">2011 - 2015</span>
    </li>
  </ul></section>
  <section class="certifications"><ul>
    <li><h3>CKA</h3><h4>CNCF</h4><time>Jan 2023</time></li>
  </ul></section>
  <section class="skills"><ul>
    <li>Go</li><li>Kubernetes</li><li> go </li><li>PostgreSQL</li>
  </ul></section>
  <section class="activities"><ul>
    <li>Shipped a new scheduler #golang</li>
    <li>Talk at GopherCon</li>
    <li>Hiring! #kubernetes</li>
  </ul></section>
</body>
</html>`

const metaOnlyHTML = `<html>
<head>
  <title>Grace Hopper - Rear Admiral | LinkedIn</title>
  <meta property="og:description" content="Compiler pioneer.">
</head>
<body><div>Join now to see more</div></body>
</html>`

func TestParseLinkedInProfile_PublicProfile(t *testing.T) {
	profile, err := ParseLinkedInProfile(publicProfileHTML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", profile.Name)
	}
	if profile.Headline != "Staff Engineer at Analytical Engines" {
		t.Errorf("Headline = %q", profile.Headline)
	}
	if profile.Location != "London, England, United Kingdom" {
		t.Errorf("Location = %q", profile.Location)
	}
	if profile.Summary != "I build reliable systems. #golang #distributed-systems" {
		t.Errorf("Summary = %q", profile.Summary)
	}

	if want := []string{"Go", "Kubernetes", "PostgreSQL"}; !reflect.DeepEqual(profile.Skills, want) {
		t.Errorf("Skills = %v, want %v", profile.Skills, want)
	}

	wantExperience := []model.ExperienceEntry{
		{Title: "Staff Engineer", Company: "Analytical Engines", Duration: "2020 - Present"},
		{Title: "Engineer", Company: "Babbage Labs", Duration: "2015 - 2020"},
	}
	if !reflect.DeepEqual(profile.Experience, wantExperience) {
		t.Errorf("Experience = %+v", profile.Experience)
	}

	wantEducation := []model.EducationEntry{{School: "University of London", Degree: "BSc Mathematics", Period: "2011 - 2015"}}
	if !reflect.DeepEqual(profile.Education, wantEducation) {
		t.Errorf("Education = %+v", profile.Education)
	}

	wantCerts := []model.CertificationEntry{{Name: "CKA", Issuer: "CNCF", Date: "Jan 2023"}}
	if !reflect.DeepEqual(profile.Certifications, wantCerts) {
		t.Errorf("Certifications = %+v", profile.Certifications)
	}

	if profile.ActivityLevel != model.ActivityMedium {
		t.Errorf("ActivityLevel = %s, want Medium", profile.ActivityLevel)
	}
	if want := []string{"golang", "distributed-systems", "kubernetes"}; !reflect.DeepEqual(profile.Topics, want) {
		t.Errorf("Topics = %v, want %v", profile.Topics, want)
	}
}

func TestParseLinkedInProfile_MetaFallbacks(t *testing.T) {
	profile, err := ParseLinkedInProfile(metaOnlyHTML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.Name != "Grace Hopper" || profile.Headline != "Rear Admiral" {
		t.Errorf("expected title fallback, got name=%q headline=%q", profile.Name, profile.Headline)
	}
	if profile.Summary != "Compiler pioneer." {
		t.Errorf("expected og:description fallback, got %q", profile.Summary)
	}
	if profile.Location != model.PlaceholderLocation {
		t.Errorf("expected location placeholder, got %q", profile.Location)
	}
	if profile.Skills == nil || len(profile.Skills) != 0 || len(profile.Experience) != 0 || len(profile.Education) != 0 {
		t.Errorf("expected empty lists, got %+v", profile)
	}
	if profile.ActivityLevel != model.ActivityLow {
		t.Errorf("ActivityLevel = %s, want Low", profile.ActivityLevel)
	}
	if profile.Topics == nil || len(profile.Topics) != 0 {
		t.Errorf("expected empty topics, got %#v", profile.Topics)
	}
}

func TestParseLinkedInProfile_EmptyDocument(t *testing.T) {
	profile, err := ParseLinkedInProfile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Name != model.PlaceholderName || profile.Headline != model.PlaceholderHeadline ||
		profile.Location != model.PlaceholderLocation || profile.Summary != model.PlaceholderSummary {
		t.Errorf("expected placeholder fields, got %+v", profile)
	}
}

func TestActivityLevel(t *testing.T) {
	testCases := []struct {
		posts int
		want  model.ActivityLevel
	}{
		{0, model.ActivityLow},
		{2, model.ActivityLow},
		{3, model.ActivityMedium},
		{9, model.ActivityMedium},
		{10, model.ActivityHigh},
		{42, model.ActivityHigh},
	}

	for _, tc := range testCases {
		if got := activityLevel(tc.posts); got != tc.want {
			t.Errorf("activityLevel(%d) = %s, want %s", tc.posts, got, tc.want)
		}
	}
}

func TestExtractTopics_FallsBackToSkills(t *testing.T) {
	skills := []string{"Go", "Rust", "SQL", "Docker", "Linux", "Terraform", "AWS"}
	got := extractTopics("no tags here", skills)
	if want := skills[:5]; !reflect.DeepEqual(got, want) {
		t.Errorf("extractTopics() = %v, want %v", got, want)
	}
	if len(skills) != 7 {
		t.Error("extractTopics must not modify the skills slice")
	}
}

func TestTitlePart(t *testing.T) {
	testCases := []struct {
		title string
		index int
		want  string
	}{
		{"Ada Lovelace - Staff Engineer | LinkedIn", 0, "Ada Lovelace"},
		{"Ada Lovelace - Staff Engineer | LinkedIn", 1, "Staff Engineer"},
		{"Ada Lovelace | LinkedIn", 1, ""},
		{"LinkedIn", 0, ""},
		{"", 0, ""},
	}

	for _, tc := range testCases {
		if got := titlePart(tc.title, tc.index); got != tc.want {
			t.Errorf("titlePart(%q, %d) = %q, want %q", tc.title, tc.index, got, tc.want)
		}
	}
}

// fakeRenderer PageRenderer测试替身
type fakeRenderer struct {
	page *RenderedPage
	err  error
	urls []string
}

func (f *fakeRenderer) Render(ctx context.Context, pageURL string) (*RenderedPage, error) {
	f.urls = append(f.urls, pageURL)
	return f.page, f.err
}

func TestScrape_Success(t *testing.T) {
	renderer := &fakeRenderer{page: &RenderedPage{FinalURL: "https://www.linkedin.com/in/ada", HTML: publicProfileHTML}}

	result, err := NewLinkedInScraper(renderer).Scrape(context.Background(), "https://www.linkedin.com/in/ada")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Placeholder {
		t.Error("expected real profile, got placeholder")
	}
	if result.Profile.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", result.Profile.Name)
	}
	if len(renderer.urls) != 1 || renderer.urls[0] != "https://www.linkedin.com/in/ada" {
		t.Errorf("unexpected rendered urls %v", renderer.urls)
	}
}

func TestScrape_Rejections(t *testing.T) {
	testCases := []struct {
		name string
		page *RenderedPage
		want error
	}{
		{"authwall redirect", &RenderedPage{FinalURL: "https://www.linkedin.com/authwall?trk=public_profile", HTML: "<html></html>"}, ErrAuthRequired},
		{"login redirect", &RenderedPage{FinalURL: "https://www.linkedin.com/login?session_redirect=x", HTML: publicProfileHTML}, ErrAuthRequired},
		{"signup redirect", &RenderedPage{FinalURL: "https://www.linkedin.com/signup/cold-join", HTML: "<html></html>"}, ErrAuthRequired},
		{"signup page in place", &RenderedPage{FinalURL: "https://www.linkedin.com/in/ada", HTML: "<html><head><title>Sign Up | LinkedIn</title></head></html>"}, ErrAuthRequired},
		{"checkpoint challenge", &RenderedPage{FinalURL: "https://www.linkedin.com/checkpoint/challenge/abc", HTML: "<html></html>"}, ErrBlocked},
		{"captcha markup", &RenderedPage{FinalURL: "https://www.linkedin.com/in/ada", HTML: `<div id="captcha-internal"></div>`}, ErrBlocked},
		{"captcha path", &RenderedPage{FinalURL: "https://www.linkedin.com/captcha/v2", HTML: "<html></html>"}, ErrBlocked},
		{"checkpoint login", &RenderedPage{FinalURL: "https://www.linkedin.com/checkpoint/lg/login-submit", HTML: "<html></html>"}, ErrAuthRequired},

		// 正常档案：slug或正文恰好包含登录/验证字样
		{"slug starting with login", &RenderedPage{FinalURL: "https://www.linkedin.com/in/loginov-dmitry", HTML: publicProfileHTML}, nil},
		{"slug starting with signup", &RenderedPage{FinalURL: "https://www.linkedin.com/in/signupsmith", HTML: publicProfileHTML}, nil},
		{"slug containing captcha", &RenderedPage{FinalURL: "https://www.linkedin.com/in/captcha-king", HTML: publicProfileHTML}, nil},
		{"headline mentions security verification", &RenderedPage{
			FinalURL: "https://www.linkedin.com/in/ada",
			HTML:     `<html><body><h1 class="top-card-layout__title">Ada</h1><h2>Security Verification Engineer at Acme</h2><p>I verify you are a human before every unusual activity from your team.</p></body></html>`,
		}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NewLinkedInScraper(&fakeRenderer{page: tc.page}).Scrape(context.Background(), "https://www.linkedin.com/in/ada")
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected profile page to be accepted, got %v", err)
				}
				if result == nil || result.Placeholder {
					t.Errorf("expected a parsed profile, got %+v", result)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if result != nil {
				t.Errorf("rejected pages must not yield a profile, got %+v", result)
			}
		})
	}
}

func TestScrape_RenderError(t *testing.T) {
	renderErr := errors.New("context deadline exceeded")
	_, err := NewLinkedInScraper(&fakeRenderer{err: renderErr}).Scrape(context.Background(), "https://www.linkedin.com/in/ada")
	if !errors.Is(err, renderErr) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
	if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrBlocked) {
		t.Errorf("render failure must not be classified as a wall: %v", err)
	}
}

func TestScrape_ExtractionFailureUsesPlaceholder(t *testing.T) {
	testCases := []struct {
		name  string
		parse func(string) (*model.LinkedInProfile, error)
	}{
		{"parse error", func(string) (*model.LinkedInProfile, error) { return nil, errors.New("bad markup") }},
		{"panic", func(string) (*model.LinkedInProfile, error) { panic("nil selection") }},
		{"nil profile", func(string) (*model.LinkedInProfile, error) { return nil, nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scraper := NewLinkedInScraper(&fakeRenderer{page: &RenderedPage{FinalURL: "https://www.linkedin.com/in/ada", HTML: "<html></html>"}})
			scraper.parse = tc.parse

			result, err := scraper.Scrape(context.Background(), "https://www.linkedin.com/in/ada")
			if err != nil {
				t.Fatalf("expected placeholder, got error %v", err)
			}
			if !result.Placeholder {
				t.Error("expected Placeholder=true")
			}
			if !reflect.DeepEqual(result.Profile, model.PlaceholderProfile()) {
				t.Errorf("unexpected placeholder profile %+v", result.Profile)
			}
		})
	}
}

func TestNormalizeLinkedInURL(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"linkedin.com/in/ada", "https://linkedin.com/in/ada", false},
		{"  https://www.linkedin.com/in/ada/  ", "https://www.linkedin.com/in/ada/", false},
		{"http://www.linkedin.com/in/ada", "http://www.linkedin.com/in/ada", false},
		{"", "", true},
		{"   ", "", true},
		{"ftp://linkedin.com/in/ada", "", true},
		{"https://", "", true},
		{"https://10.0.0.1/admin", "", true},
		{"http://169.254.169.254/latest/meta-data/", "", true},
		{"https://evil.com/in/ada", "", true},
		{"https://linkedin.com.evil.com/in/ada", "", true},
		{"https://notlinkedin.com/in/ada", "", true},
		{"https://www.linkedin.com@evil.com/in/ada", "", true},
		{"https://www.linkedin.com:8080/in/ada", "", true},
		{"https://uk.LinkedIn.com/in/ada", "https://uk.LinkedIn.com/in/ada", false},
	}

	for _, tc := range testCases {
		got, err := NormalizeLinkedInURL(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidProfileURL) {
				t.Errorf("NormalizeLinkedInURL(%q) expected ErrInvalidProfileURL, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("NormalizeLinkedInURL(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestExtractLinkedInID(t *testing.T) {
	testCases := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/in/ada-lovelace/", "ada-lovelace"},
		{"https://www.linkedin.com/in/ada?trk=x", "ada"},
		{"https://example.com/ada", ""},
	}

	for _, tc := range testCases {
		if got := ExtractLinkedInID(tc.url); got != tc.want {
			t.Errorf("ExtractLinkedInID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
