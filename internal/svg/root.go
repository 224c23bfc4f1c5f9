package svg

import (
	"strings"

	"github.com/inamate/svgscene/internal/geometry"
	"github.com/inamate/svgscene/internal/style"
)

// Root is the <svg> container: an ordered list of shapes and at most one mask.
type Root struct {
	children   []Shape
	mask       *Mask
	props      *style.Properties
	accumulate bool
	html       strings.Builder
}

// NewRoot returns an empty container that fills its parent and stacks above
// sibling content.
func NewRoot(opts ...Option) *Root {
	o := applyOptions(opts)
	props := style.New()
	props.Set("width", "100%")
	props.Set("height", "100%")
	props.Set("z-index", 2)
	return &Root{props: props, accumulate: o.accumulate}
}

func (r *Root) AddChild(shape Shape) {
	r.children = append(r.children, shape)
}

func (r *Root) Children() []Shape {
	return append([]Shape(nil), r.children...)
}

// SetMask replaces any previously set mask.
func (r *Root) SetMask(m *Mask) {
	r.mask = m
}

func (r *Root) Mask() *Mask {
	return r.mask
}

func (r *Root) Properties() *style.Properties {
	return r.props
}

// BoundingBox is the union of the top-level children's boxes. Masked-only
// shapes are not included.
func (r *Root) BoundingBox() geometry.Rect {
	var box geometry.Rect
	for _, child := range r.children {
		box = box.Union(child.BoundingBox())
	}
	return box
}

// Markup renders the tree. Without WithAccumulate it is a pure function of
// the tree and can be called any number of times.
func (r *Root) Markup(depth int) string {
	out := r.render(depth)
	if !r.accumulate {
		return out
	}
	r.html.WriteString(out)
	return r.html.String()
}

func (r *Root) render(depth int) string {
	ind := indent(depth)

	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("<svg")
	if a := r.props.Attr(); a != "" {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteString(">\n")
	if r.mask != nil {
		sb.WriteString(r.mask.Markup(depth + 1))
	}
	writeChildren(&sb, r.children, depth+1)
	sb.WriteString(ind)
	sb.WriteString("</svg>\n")
	return sb.String()
}
