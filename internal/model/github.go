package model

// RepositorySummary 仓库快照（每次请求获取，不持久化）
type RepositorySummary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Size        int      `json:"size"` // KB，GitHub返回的单位
	Topics      []string `json:"topics,omitempty"`
	URL         string   `json:"url"`
	Fork        bool     `json:"-"`
}

// FileSample 仓库顶层目录中的一个条目
type FileSample struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Language  string `json:"language"`
	Size      int64  `json:"size"`
}

// TechnologyTally 各类技术的命中计数
type TechnologyTally struct {
	Languages  map[string]int `json:"languages"`
	Frameworks map[string]int `json:"frameworks"`
	Databases  map[string]int `json:"databases"`
	Tools      map[string]int `json:"tools"`
}

// NewTechnologyTally 创建空的计数表（map非nil，序列化为{}）
func NewTechnologyTally() TechnologyTally {
	return TechnologyTally{
		Languages:  make(map[string]int),
		Frameworks: make(map[string]int),
		Databases:  make(map[string]int),
		Tools:      make(map[string]int),
	}
}

// DistinctTechnologies 不同技术数量（框架+数据库+工具，不含语言）
func (t TechnologyTally) DistinctTechnologies() int {
	return len(t.Frameworks) + len(t.Databases) + len(t.Tools)
}

// TopRepository 高星仓库
type TopRepository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// SkillAnalysisResult GitHub技能分析结果
type SkillAnalysisResult struct {
	Username        string          `json:"username"`
	TotalRepos      int             `json:"totalRepos"`
	TotalStars      int             `json:"totalStars"`
	TotalForks      int             `json:"totalForks"`
	SkillScore      int             `json:"skillScore"`
	Languages       map[string]int  `json:"languages"`
	Frameworks      map[string]int  `json:"frameworks"`
	Databases       map[string]int  `json:"databases"`
	Tools           map[string]int  `json:"tools"`
	TopRepositories []TopRepository `json:"topRepositories"`
	Recommendations []string        `json:"recommendations"`
}
