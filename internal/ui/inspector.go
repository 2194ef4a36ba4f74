package ui

import (
	"fmt"

	"cosmic-playground/internal/primitives"
	"cosmic-playground/internal/shapes"
)

// Inspector describes the shape under the cursor.
type Inspector struct {
	frame, title, typ, color, position, scale, bounce *Node
}

// NewInspector creates the inspector's nodes.
func NewInspector() *Inspector {
	return &Inspector{
		frame:    NewNode("inspector", "", ""),
		title:    NewNode("inspector-line", "inspector-title", ""),
		typ:      NewNode("inspector-line", "inspector-type", ""),
		color:    NewNode("inspector-line", "inspector-color", ""),
		position: NewNode("inspector-line", "inspector-position", ""),
		scale:    NewNode("inspector-line", "inspector-scale", ""),
		bounce:   NewNode("inspector-line", "inspector-bounce", ""),
	}
}

// AppendNodes appends the inspector to dst when a shape is hovered. The labels
// are refreshed from v each call.
func (in *Inspector) AppendNodes(dst []*Node, v shapes.View, hovered bool) []*Node {
	if !hovered {
		return dst
	}
	in.title.Text = fmt.Sprintf("Shape #%d", v.ID)
	in.typ.Text = "Type " + v.Type.String()
	in.color.Text = "Color " + v.Color
	in.color.Fill = primitives.ParseColor(v.Color)
	in.color.Fill.A = 60
	in.position.Text = fmt.Sprintf("Pos %.1f, %.1f, %.1f", v.Position.X(), v.Position.Y(), v.Position.Z())
	in.scale.Text = fmt.Sprintf("Scale %.2f", v.Scale)
	in.bounce.Text = fmt.Sprintf("Bounce %.2f", v.Restitution)
	return append(dst, in.frame, in.title, in.typ, in.color, in.position, in.scale, in.bounce)
}
