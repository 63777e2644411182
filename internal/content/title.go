package content

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var md = goldmark.New()

// firstHeading returns the text of the first level-1 ATX/Setext heading.
func firstHeading(body []byte) string {
	root := md.Parser().Parse(text.NewReader(body))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		var b strings.Builder
		collectText(h, body, &b)
		title = strings.TrimSpace(b.String())
		return gmast.WalkStop, nil
	})
	return title
}

func collectText(n gmast.Node, source []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		default:
			collectText(c, source, b)
		}
	}
}

// titleFromStem turns a file stem like "getting-started" into "Getting Started".
func titleFromStem(stem string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
