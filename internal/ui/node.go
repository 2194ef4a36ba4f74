package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is one overlay element matched by class or id.
type Node struct {
	Class  string
	ID     string
	Bounds rl.Rectangle
	Text   string
	// Fill overrides the stylesheet background when its alpha is non-zero.
	Fill color.RGBA
}

// NewNode creates a node with an optional class, id and text.
func NewNode(class, id, text string) *Node {
	return &Node{Class: class, ID: id, Text: text}
}
