package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cosmic-playground/internal/shapes"
)

// Rule is one selector with its raw property values.
type Rule struct {
	Selector string // ".panel" or "#title"
	Props    map[string]string
}

// Matches reports whether the rule's selector names n's class or id.
func (r Rule) Matches(n *Node) bool {
	if len(r.Selector) < 2 {
		return false
	}
	switch r.Selector[0] {
	case '.':
		return n.Class != "" && n.Class == r.Selector[1:]
	case '#':
		return n.ID != "" && n.ID == r.Selector[1:]
	}
	return false
}

// Stylesheet is an ordered rule list; later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved drawing values. LeftPct and TopPct place a node
// at a share of the free screen space and are -1 when Left and Top are pixels.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
	FontSize   int32
}

// DefaultComputedStyle is white text on nothing.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:   rl.White,
		Border:  rl.Black,
		LeftPct: -1,
		TopPct:  -1,
		Padding: 4,
	}
}

// ParsePx parses "12px" or "12".
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in [0, 100].
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from merged properties. Unknown keys and
// malformed values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := shapes.RGBA(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := shapes.RGBA(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := shapes.RGBA(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
