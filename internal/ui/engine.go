package ui

import (
	"errors"
	"io/fs"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultCSSPath is where the overlay stylesheet is read from when present.
const DefaultCSSPath = "assets/ui/playground.css"

const fontSize = 18

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Nodes draw in order, so later nodes sit on top. Resolved styles are cached
// until the sheet or node list changes.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
}

// New creates an engine styled with the built-in overlay sheet.
func New() *Engine {
	sheet, _ := ParseCSS(defaultCSS)
	return &Engine{sheet: sheet}
}

// LoadCSS parses the file at path and appends its rules after the built-in
// ones, so a user sheet only needs the properties it changes. A missing file
// is not an error.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	user, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	base, _ := ParseCSS(defaultCSS)
	base.Rules = append(base.Rules, user.Rules...)
	e.SetStylesheet(base)
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// SetNodes replaces all nodes. Passing the same slice contents as the previous
// frame keeps the style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolveProps merges the properties of every rule matching n; later rules win.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		if !rule.Matches(n) {
			continue
		}
		for k, v := range rule.Props {
			merged[k] = v
		}
	}
	return merged
}

func resolveBounds(n *Node, style ComputedStyle) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	n.Bounds.X = float32(style.Left)
	n.Bounds.Y = float32(style.Top)
}

// Draw draws background, border and text for every node.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	if !e.cacheValid {
		e.cachedStyles = make([]ComputedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
			resolveBounds(n, e.cachedStyles[i])
		}
		e.cacheValid = true
	}
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		w := int32(n.Bounds.Width)
		h := int32(n.Bounds.Height)
		x := int32(n.Bounds.X)
		y := int32(n.Bounds.Y)
		if style.LeftPct >= 0 {
			x = (screenW - w) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			y = (screenH - h) * style.TopPct / 100
		}

		bg := style.Background
		if n.Fill.A > 0 {
			bg = n.Fill
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text != "" {
			size := style.FontSize
			if size <= 0 {
				size = fontSize
			}
			rl.DrawText(n.Text, x+style.Padding, y+style.Padding, size, style.Color)
		}
	}
}
