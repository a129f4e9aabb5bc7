package fetcher

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"career-coach-go/internal/model"
	"career-coach-go/internal/utils"
)

// textStrategy 一种字段抽取方式，取不到返回空串
type textStrategy func(doc *goquery.Document) string

// 活跃度阈值（页面上的动态条数）
const (
	highActivityPosts   = 10
	mediumActivityPosts = 3
	maxTopics           = 10
	fallbackTopics      = 5
)

var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}][\p{L}\p{N}_-]{1,40})`)

// 每个字段按顺序尝试，第一个非空结果生效
var (
	nameStrategies = []textStrategy{
		selectorText("h1.top-card-layout__title"),
		selectorText("h1.text-heading-xlarge"),
		selectorText(".pv-text-details__left-panel h1"),
		selectorText("h1"),
		metaTitlePart("og:title", 0),
		documentTitlePart(0),
	}

	headlineStrategies = []textStrategy{
		selectorText("h2.top-card-layout__headline"),
		selectorText(".top-card-layout__headline"),
		selectorText(".pv-text-details__left-panel .text-body-medium"),
		selectorText("div.text-body-medium.break-words"),
		metaTitlePart("og:title", 1),
		documentTitlePart(1),
	}

	locationStrategies = []textStrategy{
		selectorText(".top-card-layout__first-subline .top-card__subline-item"),
		selectorText(".top-card__subline-item"),
		selectorText(".profile-info-subheader .not-first-middot span"),
		selectorText(".pv-text-details__left-panel span.text-body-small.inline"),
		selectorText("span.text-body-small.inline.t-black--light.break-words"),
	}

	summaryStrategies = []textStrategy{
		selectorText("section.summary .core-section-container__content p"),
		selectorText("section[data-section='summary'] p"),
		selectorText(".core-section-container.summary p"),
		selectorText("#about ~ .display-flex .inline-show-more-text span[aria-hidden='true']"),
		selectorText(".pv-about__summary-text"),
		metaContent("og:description"),
		metaContent("description"),
	}
)

var (
	skillSelectors = []string{
		"section.skills li",
		"section[data-section='skills'] li",
		".pv-skill-category-entity__name-text",
		"#skills ~ .pvs-list__outer-container .mr1 span[aria-hidden='true']",
	}

	experienceItemSelectors = []string{
		"section.experience li.experience-item",
		"section[data-section='experience'] li",
		"section.experience li",
		"#experience ~ .pvs-list__outer-container li.artdeco-list__item",
	}
	experienceTitleSelectors    = []string{".experience-item__title", ".profile-section-card__title", "h3", "span.t-bold span[aria-hidden='true']"}
	experienceCompanySelectors  = []string{".experience-item__subtitle", ".profile-section-card__subtitle", "h4", "span.t-14.t-normal span[aria-hidden='true']"}
	experienceDurationSelectors = []string{".date-range", ".experience-item__duration", "span.t-black--light span[aria-hidden='true']"}

	educationItemSelectors = []string{
		"section.education li.education__list-item",
		"section[data-section='educationsDetails'] li",
		"section.education li",
		"#education ~ .pvs-list__outer-container li.artdeco-list__item",
	}
	educationSchoolSelectors = []string{".profile-section-card__title", "h3", "span.t-bold span[aria-hidden='true']"}
	educationDegreeSelectors = []string{".education__item--degree-info", ".profile-section-card__subtitle", "h4", "span.t-14.t-normal span[aria-hidden='true']"}
	educationPeriodSelectors = []string{".date-range", "span.t-black--light span[aria-hidden='true']"}

	certificationItemSelectors = []string{
		"section.certifications li",
		"section[data-section='certifications'] li",
		"#licenses_and_certifications ~ .pvs-list__outer-container li.artdeco-list__item",
	}
	certificationNameSelectors   = []string{".profile-section-card__title", "h3", "span.t-bold span[aria-hidden='true']"}
	certificationIssuerSelectors = []string{".profile-section-card__subtitle", "h4", "span.t-14.t-normal span[aria-hidden='true']"}
	certificationDateSelectors   = []string{".certified-period", "time", "span.t-black--light span[aria-hidden='true']"}

	activitySelectors = []string{
		"section.activities li",
		"section[data-section='posts'] li",
		".activities-section li",
		"#content_collections ~ .pvs-list__outer-container li",
		"article",
	}
)

// ParseLinkedInProfile 从渲染后的HTML抽取档案，取不到的标量字段使用占位文本
func ParseLinkedInProfile(html string) (*model.LinkedInProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	profile := &model.LinkedInProfile{
		Name:     firstText(doc, nameStrategies, model.PlaceholderName),
		Headline: firstText(doc, headlineStrategies, model.PlaceholderHeadline),
		Location: firstText(doc, locationStrategies, model.PlaceholderLocation),
		Summary:  firstText(doc, summaryStrategies, model.PlaceholderSummary),
		Skills:   extractSkills(doc),
	}
	profile.Experience = extractExperience(doc)
	profile.Education = extractEducation(doc)
	profile.Certifications = extractCertifications(doc)

	activity := firstMatching(doc, activitySelectors)
	profile.ActivityLevel = activityLevel(activity.Length())

	texts := []string{profile.Summary}
	activity.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	profile.Topics = extractTopics(strings.Join(texts, " "), profile.Skills)

	return profile, nil
}

func firstText(doc *goquery.Document, strategies []textStrategy, placeholder string) string {
	for _, strategy := range strategies {
		if value := strategy(doc); value != "" {
			return value
		}
	}
	return placeholder
}

func selectorText(selector string) textStrategy {
	return func(doc *goquery.Document) string {
		var out string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = utils.CleanText(s.Text())
			return out == ""
		})
		return out
	}
}

func metaContent(name string) textStrategy {
	return func(doc *goquery.Document) string {
		for _, attr := range []string{"property", "name"} {
			sel := doc.Find("meta[" + attr + "='" + name + "']").First()
			if content, ok := sel.Attr("content"); ok {
				if text := utils.CleanText(content); text != "" {
					return text
				}
			}
		}
		return ""
	}
}

// metaTitlePart og:title 格式通常是 "Name - Headline | LinkedIn"
func metaTitlePart(name string, index int) textStrategy {
	meta := metaContent(name)
	return func(doc *goquery.Document) string {
		return titlePart(meta(doc), index)
	}
}

func documentTitlePart(index int) textStrategy {
	return func(doc *goquery.Document) string {
		return titlePart(utils.CleanText(doc.Find("title").First().Text()), index)
	}
}

func titlePart(title string, index int) string {
	title = strings.TrimSuffix(title, " | LinkedIn")
	title = strings.TrimSuffix(title, " - LinkedIn")
	if title == "" || strings.EqualFold(title, "LinkedIn") {
		return ""
	}
	parts := strings.SplitN(title, " - ", 2)
	if index >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[index])
}

// firstMatching 返回第一个有结果的选择器
func firstMatching(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("__none__")
}

func childText(s *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := utils.CleanText(s.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func extractSkills(doc *goquery.Document) []string {
	for _, selector := range skillSelectors {
		var skills []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			skills = append(skills, utils.CleanText(s.Text()))
		})
		if skills = utils.UniqueNonEmpty(skills); len(skills) > 0 {
			return skills
		}
	}
	return []string{}
}

func extractExperience(doc *goquery.Document) []model.ExperienceEntry {
	entries := []model.ExperienceEntry{}
	firstMatching(doc, experienceItemSelectors).Each(func(_ int, s *goquery.Selection) {
		entry := model.ExperienceEntry{
			Title:    childText(s, experienceTitleSelectors),
			Company:  childText(s, experienceCompanySelectors),
			Duration: childText(s, experienceDurationSelectors),
		}
		if entry.Title != "" || entry.Company != "" {
			entries = append(entries, entry)
		}
	})
	return entries
}

func extractEducation(doc *goquery.Document) []model.EducationEntry {
	entries := []model.EducationEntry{}
	firstMatching(doc, educationItemSelectors).Each(func(_ int, s *goquery.Selection) {
		entry := model.EducationEntry{
			School: childText(s, educationSchoolSelectors),
			Degree: childText(s, educationDegreeSelectors),
			Period: childText(s, educationPeriodSelectors),
		}
		if entry.School != "" {
			entries = append(entries, entry)
		}
	})
	return entries
}

func extractCertifications(doc *goquery.Document) []model.CertificationEntry {
	entries := []model.CertificationEntry{}
	firstMatching(doc, certificationItemSelectors).Each(func(_ int, s *goquery.Selection) {
		entry := model.CertificationEntry{
			Name:   childText(s, certificationNameSelectors),
			Issuer: childText(s, certificationIssuerSelectors),
			Date:   childText(s, certificationDateSelectors),
		}
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	})
	return entries
}

func activityLevel(posts int) model.ActivityLevel {
	switch {
	case posts >= highActivityPosts:
		return model.ActivityHigh
	case posts >= mediumActivityPosts:
		return model.ActivityMedium
	default:
		return model.ActivityLow
	}
}

// extractTopics 优先取页面中的hashtag，没有时退回前几个技能
func extractTopics(text string, skills []string) []string {
	var tags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	topics := utils.UniqueNonEmpty(tags)
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	if len(topics) > 0 {
		return topics
	}

	if len(skills) > fallbackTopics {
		skills = skills[:fallbackTopics]
	}
	return append([]string{}, skills...)
}
