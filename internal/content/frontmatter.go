package content

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML frontmatter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// frontMatter holds the fields that shape a page's sidebar entry.
type frontMatter struct {
	Title   string `yaml:"title"`
	Draft   bool   `yaml:"draft"`
	Sidebar struct {
		Label  string `yaml:"label"`
		Order  *int   `yaml:"order"`
		Hidden bool   `yaml:"hidden"`
	} `yaml:"sidebar"`
}

// splitFrontMatter separates `---` delimited YAML frontmatter from the body.
// CRLF documents are handled. Without frontmatter, fm is nil and body is the
// whole input.
func splitFrontMatter(content []byte) (fm []byte, body []byte, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	closing := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter at EOF without trailing newline.
		tail := append(append([]byte{}, nl...), []byte("---")...)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], nil
}

func parseFrontMatter(fm []byte) (frontMatter, error) {
	var out frontMatter
	if len(bytes.TrimSpace(fm)) == 0 {
		return out, nil
	}
	err := yaml.Unmarshal(fm, &out)
	return out, err
}
