package analysis

import (
	"path"
	"strings"
)

// UnknownLanguage 无法识别扩展名时的语言标签
const UnknownLanguage = "Unknown"

var extensionLanguages = map[string]string{
	"js":     "JavaScript",
	"mjs":    "JavaScript",
	"cjs":    "JavaScript",
	"jsx":    "JavaScript",
	"ts":     "TypeScript",
	"tsx":    "TypeScript",
	"py":     "Python",
	"ipynb":  "Jupyter Notebook",
	"java":   "Java",
	"kt":     "Kotlin",
	"kts":    "Kotlin",
	"scala":  "Scala",
	"go":     "Go",
	"rs":     "Rust",
	"rb":     "Ruby",
	"php":    "PHP",
	"cs":     "C#",
	"fs":     "F#",
	"c":      "C",
	"h":      "C",
	"cpp":    "C++",
	"cc":     "C++",
	"hpp":    "C++",
	"m":      "Objective-C",
	"swift":  "Swift",
	"dart":   "Dart",
	"lua":    "Lua",
	"r":      "R",
	"jl":     "Julia",
	"ex":     "Elixir",
	"exs":    "Elixir",
	"erl":    "Erlang",
	"hs":     "Haskell",
	"clj":    "Clojure",
	"sh":     "Shell",
	"bash":   "Shell",
	"ps1":    "PowerShell",
	"sql":    "SQL",
	"html":   "HTML",
	"htm":    "HTML",
	"css":    "CSS",
	"scss":   "SCSS",
	"sass":   "Sass",
	"less":   "Less",
	"vue":    "Vue",
	"svelte": "Svelte",
	"sol":    "Solidity",
	"tf":     "HCL",
	"yml":    "YAML",
	"yaml":   "YAML",
	"json":   "JSON",
	"md":     "Markdown",
}

// LanguageFromExtension 扩展名 -> 语言标签，不区分大小写，可带前导点
func LanguageFromExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return UnknownLanguage
}

// FileExtension 取文件名的扩展名（不含点）。".gitignore" 这类点文件没有扩展名
func FileExtension(name string) string {
	base := path.Base(name)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx+1:]
}
