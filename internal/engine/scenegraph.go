package engine

import (
	"github.com/inamate/svgscene/internal/document"
	"github.com/inamate/svgscene/internal/geometry"
	"github.com/inamate/svgscene/internal/svg"
)

// SceneGraph is a built drawing: the svg node tree ready for markup plus an
// index of every shape by document id.
type SceneGraph struct {
	Root      *svg.Root
	Nodes     []*SceneNode // top-level shapes in painter's order
	NodesByID map[string]*SceneNode
}

// SceneNode is one built shape.
type SceneNode struct {
	ID     string
	Type   document.ObjectType
	Shape  svg.Shape
	Bounds geometry.Rect
	MaskID string
	InMask bool // child of the drawing's mask rather than the root
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph(opts ...svg.Option) *SceneGraph {
	return &SceneGraph{
		Root:      svg.NewRoot(opts...),
		NodesByID: make(map[string]*SceneNode),
	}
}

// Markup renders the whole tree.
func (sg *SceneGraph) Markup() string {
	return sg.Root.Markup(0)
}

// Bounds returns the union of the top-level shapes' bounding boxes.
func (sg *SceneGraph) Bounds() geometry.Rect {
	return sg.Root.BoundingBox()
}
