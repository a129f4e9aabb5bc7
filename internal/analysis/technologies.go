package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"career-coach-go/internal/model"
)

// Category 技术类别
type Category string

const (
	CategoryFramework Category = "framework"
	CategoryDatabase  Category = "database"
	CategoryTool      Category = "tool"
	CategoryCloud     Category = "cloud"
)

//go:embed technologies.yaml
var defaultTechnologyTable []byte

// technologyTable YAML中的技术表
type technologyTable struct {
	Frameworks []technologyEntry `yaml:"frameworks"`
	Databases  []technologyEntry `yaml:"databases"`
	Tools      []technologyEntry `yaml:"tools"`
	Cloud      []technologyEntry `yaml:"cloud"`
}

type technologyEntry struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// Technology 一条编译好的检测规则
type Technology struct {
	Name     string
	Category Category
	pattern  *regexp.Regexp
}

// Matches 文本是否命中
func (t Technology) Matches(text string) bool {
	return t.pattern.MatchString(text)
}

// Detector 技术检测器。加载后只读，可并发使用
type Detector struct {
	technologies []Technology
}

var (
	defaultDetector     *Detector
	defaultDetectorOnce sync.Once
)

// DefaultDetector 内置技术表的检测器（进程内只编译一次）
func DefaultDetector() *Detector {
	defaultDetectorOnce.Do(func() {
		d, err := ParseDetector(defaultTechnologyTable)
		if err != nil {
			panic(fmt.Sprintf("embedded technology table is invalid: %v", err))
		}
		defaultDetector = d
	})
	return defaultDetector
}

// LoadDetector 从YAML文件加载技术表，path为空时使用内置表
func LoadDetector(path string) (*Detector, error) {
	if path == "" {
		return DefaultDetector(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read technology table %s: %w", path, err)
	}
	return ParseDetector(data)
}

// ParseDetector 解析YAML技术表并编译正则
func ParseDetector(data []byte) (*Detector, error) {
	var table technologyTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse technology table: %w", err)
	}

	d := &Detector{}
	sections := []struct {
		category Category
		entries  []technologyEntry
	}{
		{CategoryFramework, table.Frameworks},
		{CategoryDatabase, table.Databases},
		{CategoryTool, table.Tools},
		{CategoryCloud, table.Cloud},
	}
	for _, section := range sections {
		for _, entry := range section.entries {
			tech, err := compileTechnology(section.category, entry)
			if err != nil {
				return nil, err
			}
			d.technologies = append(d.technologies, tech)
		}
	}

	if len(d.technologies) == 0 {
		return nil, fmt.Errorf("technology table is empty")
	}
	return d, nil
}

func compileTechnology(category Category, entry technologyEntry) (Technology, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return Technology{}, fmt.Errorf("%s entry without name", category)
	}
	if len(entry.Patterns) == 0 {
		return Technology{}, fmt.Errorf("%s %q has no patterns", category, name)
	}

	parts := make([]string, 0, len(entry.Patterns))
	for _, p := range entry.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return Technology{}, fmt.Errorf("%s %q: invalid pattern %q: %w", category, name, p, err)
		}
		parts = append(parts, "(?:"+p+")")
	}

	return Technology{
		Name:     name,
		Category: category,
		pattern:  regexp.MustCompile("(?i)" + strings.Join(parts, "|")),
	}, nil
}

// Technologies 返回规则副本
func (d *Detector) Technologies() []Technology {
	out := make([]Technology, len(d.technologies))
	copy(out, d.technologies)
	return out
}

// DetectTechnologies 对仓库文本和采样文件名做正则计数。
// 同一段文本可以命中多个技术，全部累加；cloud 计入 Tools。
func (d *Detector) DetectTechnologies(repos []model.RepositorySummary, files []model.FileSample) model.TechnologyTally {
	tally := model.NewTechnologyTally()

	for _, repo := range repos {
		if repo.Language != "" {
			tally.Languages[repo.Language]++
		}
		d.matchText(repoText(repo), tally)
	}

	for _, file := range files {
		if file.Language != "" && file.Language != UnknownLanguage {
			tally.Languages[file.Language]++
		}
		d.matchText(file.Name, tally)
	}

	return tally
}

func (d *Detector) matchText(text string, tally model.TechnologyTally) {
	if text == "" {
		return
	}
	for _, tech := range d.technologies {
		if !tech.Matches(text) {
			continue
		}
		switch tech.Category {
		case CategoryFramework:
			tally.Frameworks[tech.Name]++
		case CategoryDatabase:
			tally.Databases[tech.Name]++
		case CategoryTool, CategoryCloud:
			tally.Tools[tech.Name]++
		}
	}
}

// repoText name + description + topics
func repoText(repo model.RepositorySummary) string {
	parts := make([]string, 0, 2+len(repo.Topics))
	parts = append(parts, repo.Name)
	if repo.Description != "" {
		parts = append(parts, repo.Description)
	}
	parts = append(parts, repo.Topics...)
	return strings.Join(parts, " ")
}
