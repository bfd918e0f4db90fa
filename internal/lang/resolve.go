package lang

import "strings"

// classPrefix is the prefix highlighter class names carry in catalog data.
const classPrefix = "language-"

// aliases maps user-facing names to tags.
var aliases = map[string]string{
	"bash":        "bash",
	"c":           "c",
	"c++":         "cpp",
	"c#":          "csharp",
	"clojure":     "clojure",
	"crystal":     "crystal",
	"css":         "css",
	"diff":        "diff",
	"docker":      "docker",
	"elm":         "elm",
	"elixir":      "elixir",
	"exlang":      "erlang",
	"graphql":     "graphql",
	"go":          "go",
	"haskell":     "haskell",
	"html":        "html",
	"java":        "java",
	"js":          "javascript",
	"json":        "json",
	"kotlin":      "kotlin",
	"lisp":        "common-lisp",
	"markdown":    "markdown",
	"lua":         "lua",
	"matlab":      "matlab",
	"pascal":      "pascal",
	"powershell":  "powershell",
	"plaintext":   "plaintext",
	"objective c": "objective-c",
	"objective-c": "objective-c",
	"php":         "php",
	"python":      "python",
	"ruby":        "ruby",
	"rust":        "rust",
	"scala":       "scala",
	"scss":        "scss",
	"sql":         "sql",
	"swift":       "swift",
	"toml":        "toml",
	"typescript":  "typescript",
	"xml":         "xml",
	"yaml":        "yaml",
	"ts":          "typescript",
	"jsx":         "javascript",
	"tsx":         "typescript",
	"shell":       "bash",
	"console":     "bash",
}

// classTags maps highlighter class suffixes whose name differs from the tag.
var classTags = map[string]string{
	"none":       "plaintext",
	"objectivec": "objective-c",
	"lisp":       "common-lisp",
}

// Resolve maps a language name, alias or "language-*" class to a tag.
// Unknown input yields "".
func Resolve(input string) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return ""
	}
	low := strings.ToLower(in)
	if strings.HasPrefix(low, classPrefix) {
		suffix := strings.TrimPrefix(low, classPrefix)
		if tag, ok := classTags[suffix]; ok {
			return tag
		}
		return suffix
	}
	return aliases[low]
}

// Class returns the highlighter class name for tag ("" stays "").
func Class(tag string) string {
	if tag == "" {
		return ""
	}
	if strings.HasPrefix(tag, classPrefix) {
		return tag
	}
	return classPrefix + tag
}
