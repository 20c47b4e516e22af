// Package highlight splits the <b>-marked strings returned for suggestions
// and spell corrections into plain and highlighted runs.
package highlight

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Segment is a run of text that is either emphasised or not.
type Segment struct {
	Text        string
	Highlighted bool
}

// Parse returns the runs of markup in order. Adjacent runs of the same kind
// are merged and empty runs are dropped.
func Parse(markup string) ([]Segment, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	var out []Segment
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		out = appendSegment(out, Segment{
			Text:        s.Text(),
			Highlighted: isEmphasis(goquery.NodeName(s)),
		})
	})
	return out, nil
}

// Plain strips all markup and returns the text content.
func Plain(markup string) (string, error) {
	doc, err := parse(markup)
	if err != nil {
		return "", err
	}
	return doc.Find("body").Text(), nil
}

// Render joins segments, wrapping highlighted runs with open and close.
func Render(segments []Segment, open, close string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Highlighted {
			b.WriteString(open)
			b.WriteString(seg.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse highlight markup: %w", err)
	}
	return doc, nil
}

func isEmphasis(name string) bool {
	switch name {
	case "b", "strong", "mark", "em":
		return true
	}
	return false
}

func appendSegment(out []Segment, seg Segment) []Segment {
	if seg.Text == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Highlighted == seg.Highlighted {
		out[n-1].Text += seg.Text
		return out
	}
	return append(out, seg)
}
