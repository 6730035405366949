package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// DeckHeader holds the global Marp directives written at the top of a deck.
type DeckHeader struct {
	Marp     bool   `yaml:"marp"`
	Theme    string `yaml:"theme"`
	Class    string `yaml:"class,omitempty"`
	Paginate bool   `yaml:"paginate"`
}

// BuildDeck prefixes body with a front matter block carrying header.
func BuildDeck(header DeckHeader, body string) (string, error) {
	header.Marp = true
	directives, err := yamlutil.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding deck header: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontMatterDelimiter + "\n")
	b.Write(directives)
	if len(directives) > 0 && directives[len(directives)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(frontMatterDelimiter + "\n\n")
	b.WriteString(body)
	return b.String(), nil
}
