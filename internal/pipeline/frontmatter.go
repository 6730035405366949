package pipeline

import (
	"strings"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// frontMatterDelimiter opens and closes a YAML front matter block.
const frontMatterDelimiter = "---"

// FrontMatter holds the Marp directives read from a document's front matter.
// Unknown keys are ignored.
type FrontMatter struct {
	Theme    string `yaml:"theme"`
	Class    string `yaml:"class"`
	Paginate *bool  `yaml:"paginate"`
}

// SplitFrontMatter removes a leading front matter block from content and
// returns its directives with the remaining body. A block that is not valid
// YAML is still removed; its directives are then empty.
func SplitFrontMatter(content string) (FrontMatter, string) {
	var fm FrontMatter

	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimSpace(first) != frontMatterDelimiter {
		return fm, content
	}

	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != frontMatterDelimiter {
			continue
		}
		block := strings.Join(lines[:i], "\n")
		if strings.TrimSpace(block) != "" {
			if err := yamlutil.Unmarshal([]byte(block), &fm); err != nil {
				fm = FrontMatter{}
			}
		}
		return fm, strings.Join(lines[i+1:], "\n")
	}

	// No closing delimiter: the leading line is a thematic break.
	return fm, content
}
