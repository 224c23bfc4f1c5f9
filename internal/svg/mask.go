package svg

import (
	"fmt"
	"strings"

	"github.com/inamate/svgscene/internal/style"
)

// Mask is a named group of shapes rendered as an SVG <mask>. Shapes refer to
// it through SetMaskID.
type Mask struct {
	id         string
	children   []Shape
	props      *style.Properties
	accumulate bool
	html       strings.Builder
}

// NewMask fails with ErrMissingIdentifier when id is empty.
func NewMask(id string, opts ...Option) (*Mask, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: mask id must be set", ErrMissingIdentifier)
	}
	o := applyOptions(opts)
	return &Mask{
		id:         id,
		props:      style.New(),
		accumulate: o.accumulate,
	}, nil
}

func (m *Mask) ID() string { return m.id }

// SetID renames the mask. Shapes that referenced the old id are not updated.
func (m *Mask) SetID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: mask id must be set", ErrMissingIdentifier)
	}
	m.id = id
	return nil
}

// AddChild appends shape. Shapes added to a mask should not also be added to
// the root.
func (m *Mask) AddChild(shape Shape) {
	m.children = append(m.children, shape)
}

func (m *Mask) Children() []Shape {
	return append([]Shape(nil), m.children...)
}

func (m *Mask) Properties() *style.Properties {
	return m.props
}

// Markup renders the mask with its children one per line. depth only
// controls indentation.
func (m *Mask) Markup(depth int) string {
	out := m.render(depth)
	if !m.accumulate {
		return out
	}
	m.html.WriteString(out)
	return m.html.String()
}

func (m *Mask) render(depth int) string {
	ind := indent(depth)

	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("<mask id='")
	sb.WriteString(style.EscapeAttr(m.id))
	sb.WriteByte('\'')
	if a := m.props.Attr(); a != "" {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteString(">\n")
	writeChildren(&sb, m.children, depth+1)
	sb.WriteString(ind)
	sb.WriteString("</mask>\n")
	return sb.String()
}

func writeChildren(sb *strings.Builder, children []Shape, depth int) {
	ind := indent(depth)
	for _, child := range children {
		sb.WriteString(ind)
		sb.WriteString(child.Markup())
		sb.WriteByte('\n')
	}
}
