package ui

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"cosmic-playground/internal/primitives"
	"cosmic-playground/internal/shapes"
)

// ScaleStep is how much one bracket press changes the panel scale.
const ScaleStep = 0.1

// Adder creates shapes on behalf of the panel.
type Adder interface {
	AddShape(typeName, color string, scale float32) (shapes.ID, error)
}

var addKeys = []struct {
	key int32
	typ shapes.Type
}{
	{rl.KeyOne, shapes.Box},
	{rl.KeyTwo, shapes.Sphere},
	{rl.KeyThree, shapes.Cylinder},
	{rl.KeyFour, shapes.Pyramid},
}

// AddPanel holds the color and scale the number keys add shapes with.
type AddPanel struct {
	colors   []string
	colorIdx int
	scale    float32
	minScale float32
	maxScale float32

	frame, title, keys, color, swatch, scaleLine *Node
}

// NewAddPanel starts at defaultColor and defaultScale. C cycles through
// defaultColor followed by palette; scale stays within [minScale, maxScale].
func NewAddPanel(defaultColor string, palette []string, defaultScale, minScale, maxScale float32) *AddPanel {
	colors := []string{defaultColor}
	for _, c := range palette {
		if c != defaultColor {
			colors = append(colors, c)
		}
	}
	p := &AddPanel{
		colors:    colors,
		minScale:  minScale,
		maxScale:  maxScale,
		frame:     NewNode("add-panel", "", ""),
		title:     NewNode("add-line", "add-title", "Add shape"),
		keys:      NewNode("add-line", "add-keys", "1 Box  2 Sphere  3 Cylinder  4 Pyramid"),
		color:     NewNode("add-line", "add-color", ""),
		swatch:    NewNode("", "add-swatch", ""),
		scaleLine: NewNode("add-line", "add-scale", ""),
	}
	p.setScale(defaultScale)
	p.refresh()
	return p
}

// Color is the color the next shape is added with.
func (p *AddPanel) Color() string { return p.colors[p.colorIdx] }

// Scale is the scale the next shape is added with.
func (p *AddPanel) Scale() float32 { return p.scale }

// NextColor advances to the next color, wrapping around.
func (p *AddPanel) NextColor() {
	p.colorIdx = (p.colorIdx + 1) % len(p.colors)
	p.refresh()
}

// Nudge changes the scale by delta steps.
func (p *AddPanel) Nudge(delta int) {
	p.setScale(p.scale + float32(delta)*ScaleStep)
	p.refresh()
}

func (p *AddPanel) setScale(s float32) {
	// round to the step so repeated nudges do not drift
	s = math32.Round(s/ScaleStep) * ScaleStep
	p.scale = math32.Max(p.minScale, math32.Min(p.maxScale, s))
}

func (p *AddPanel) refresh() {
	p.color.Text = "Color " + p.Color() + "   [C]"
	p.swatch.Fill = primitives.ParseColor(p.Color())
	p.scaleLine.Text = fmt.Sprintf("Scale %.2f   [ and ]", p.scale)
}

// HandleInput applies panel keys and adds a shape for each number key pressed.
// It returns the first error from a.
func (p *AddPanel) HandleInput(a Adder) error {
	if rl.IsKeyPressed(rl.KeyC) {
		p.NextColor()
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		p.Nudge(-1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		p.Nudge(1)
	}
	var firstErr error
	for _, k := range addKeys {
		if !rl.IsKeyPressed(k.key) {
			continue
		}
		if _, err := a.AddShape(k.typ.String(), p.Color(), p.scale); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AppendNodes appends the panel's nodes to dst.
func (p *AddPanel) AppendNodes(dst []*Node) []*Node {
	return append(dst, p.frame, p.title, p.keys, p.color, p.swatch, p.scaleLine)
}
