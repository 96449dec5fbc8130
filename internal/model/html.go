package model

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags start a new line when rendered as plain text.
var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// PlainText renders an HTML note (catatanHTML) as terminal text.
// Tags are dropped, block elements become line breaks and runs of
// whitespace collapse to one space.
func PlainText(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))

	var lines []string
	var cur strings.Builder
	flush := func() {
		line := strings.Join(strings.Fields(cur.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way render what was read
			flush()
			return strings.Join(lines, "\n")
		case html.TextToken:
			cur.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				flush()
			}
		}
	}
}
