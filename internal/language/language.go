package language

import "path"

// Tag identifies a programming language, or TagText for anything the
// classifier does not recognize.
type Tag string

// TagText is the fallback tag for unknown extensions and extensionless files.
const TagText Tag = "txt"

const (
	TagPython     Tag = "Python"
	TagJavaScript Tag = "JavaScript"
	TagTypeScript Tag = "TypeScript"
	TagJava       Tag = "Java"
	TagC          Tag = "C"
	TagCPP        Tag = "C++"
	TagCSharp     Tag = "C#"
	TagGo         Tag = "Go"
	TagRuby       Tag = "Ruby"
	TagPHP        Tag = "PHP"
	TagRust       Tag = "Rust"
	TagSwift      Tag = "Swift"
	TagKotlin     Tag = "Kotlin"
	TagHTML       Tag = "HTML"
	TagCSS        Tag = "CSS"
	TagShell      Tag = "Shell"
	TagSQL        Tag = "SQL"
)

// Extension match is case-sensitive: ".PY" is not ".py".
var extToTag = map[string]Tag{
	".py":    TagPython,
	".js":    TagJavaScript,
	".ts":    TagTypeScript,
	".java":  TagJava,
	".c":     TagC,
	".cpp":   TagCPP,
	".cs":    TagCSharp,
	".go":    TagGo,
	".rb":    TagRuby,
	".php":   TagPHP,
	".rs":    TagRust,
	".swift": TagSwift,
	".kt":    TagKotlin,
	".html":  TagHTML,
	".css":   TagCSS,
	".sh":    TagShell,
	".sql":   TagSQL,
}

// Classify maps a file path to a language tag by extension. It is total:
// unrecognized or missing extensions yield TagText.
func Classify(filePath string) Tag {
	if tag, ok := extToTag[path.Ext(filePath)]; ok {
		return tag
	}
	return TagText
}

// Known returns all tags with a dedicated extension mapping, in no
// particular order. TagText is not included.
func Known() []Tag {
	tags := make([]Tag, 0, len(extToTag))
	seen := make(map[Tag]bool)
	for _, t := range extToTag {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
