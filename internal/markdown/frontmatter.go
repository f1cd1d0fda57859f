package markdown

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var ErrNoFrontmatter = errors.New("no frontmatter block")
var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

// Frontmatter is the metadata block written at the top of every post file.
type Frontmatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Slug       string   `yaml:"slug"`
	Excerpt    string   `yaml:"excerpt"`
	Tags       []string `yaml:"tags"`
	Author     string   `yaml:"author"`
	CoverImage string   `yaml:"coverImage"`
}

// SplitFrontmatter separates a leading frontmatter block from the body.
// The block opens with a "---" line and ends at the first following "---"
// line. When the file does not open with a delimiter, or the block is never
// closed, ok is false and the whole input is the body.
func SplitFrontmatter(raw string) (front, body string, ok bool) {
	text := strings.TrimPrefix(raw, "\ufeff")

	first, rest, found := strings.Cut(text, "\n")
	if !found || !isDelimiter(first) {
		return "", raw, false
	}

	offset := 0
	for offset <= len(rest) {
		line, after, more := strings.Cut(rest[offset:], "\n")
		if isDelimiter(line) {
			front = rest[:offset]
			if !more {
				return front, "", true
			}
			return front, after, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", raw, false
}

// StripFrontmatter returns the trimmed body with any frontmatter removed.
func StripFrontmatter(raw string) string {
	_, body, _ := SplitFrontmatter(raw)
	return strings.TrimSpace(body)
}

// ParseFrontmatter decodes the frontmatter block of raw and returns it with
// the untrimmed body.
func ParseFrontmatter(raw string) (Frontmatter, string, error) {
	front, body, ok := SplitFrontmatter(raw)
	if !ok {
		return Frontmatter{}, raw, ErrNoFrontmatter
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
		return Frontmatter{}, body, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	return fm, body, nil
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == delimiter
}
