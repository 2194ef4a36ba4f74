package ui

import (
	"fmt"
	"strings"
)

// ParseCSS parses a small CSS subset: .class and #id selectors, comma-separated
// selector groups and "key: value;" declarations. Comments are stripped; any
// other selector is skipped. An unterminated block is an error.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	content = stripComments(content)
	for {
		content = strings.TrimSpace(content)
		if content == "" {
			return sheet, nil
		}
		open := strings.IndexByte(content, '{')
		if open == -1 {
			return sheet, fmt.Errorf("ui: stray text %q", truncate(content, 20))
		}
		end := matchingBrace(content, open)
		if end == -1 {
			return sheet, fmt.Errorf("ui: unterminated block after %q", strings.TrimSpace(content[:open]))
		}
		props := parseDeclarations(content[open+1 : end])
		for _, sel := range strings.Split(content[:open], ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
		content = content[end+1:]
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

func matchingBrace(s string, open int) int {
	depth := 1
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}
