// Package svg is a small scene graph of SVG shape nodes that renders itself
// to markup. Shapes are created once with fixed geometry; a Root collects
// shapes and an optional Mask and serializes the tree.
package svg

import (
	"errors"
	"strconv"
	"strings"

	"github.com/inamate/svgscene/internal/geometry"
	"github.com/inamate/svgscene/internal/style"
)

var (
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrInvalidGeometry   = errors.New("invalid geometry")
)

// Shape is a renderable primitive.
type Shape interface {
	BoundingBox() geometry.Rect
	Markup() string
}

// Maskable is a shape that can reference a mask by id.
type Maskable interface {
	Shape
	SetMaskID(id string)
	MaskID() string
}

// base carries what every shape variant shares: its profile, the mask
// reference and the property bag.
type base struct {
	profile  Profile
	maskID   string
	maskAttr string
	props    *style.Properties
}

func newBase(opts []Option) base {
	o := applyOptions(opts)
	return base{profile: o.profile, props: style.New()}
}

// SetMaskID references the mask with the given id. The id is not checked
// against any tree; an empty id removes the reference.
func (b *base) SetMaskID(id string) {
	b.maskID = id
	if id == "" {
		b.maskAttr = ""
		return
	}
	b.maskAttr = `mask="url(#` + style.EscapeAttr(id) + `)"`
}

// MaskID returns the referenced mask id, or "" when unmasked.
func (b *base) MaskID() string {
	return b.maskID
}

// Properties returns the shape's style properties.
func (b *base) Properties() *style.Properties {
	return b.props
}

// Profile returns the profile the shape was built with.
func (b *base) Profile() Profile {
	return b.profile
}

// element renders a self-closing tag. Positional attributes come first,
// followed by the mask reference and the style attribute; empty pieces are
// skipped.
func (b *base) element(name string, attrs ...string) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	if b.profile.ShapeRenderingHint {
		sb.WriteString(" shape-rendering='optimizeSpeed'")
	}
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	for _, a := range []string{b.maskAttr, b.props.Attr()} {
		if a == "" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteString("/>")
	return sb.String()
}

func attr(name string, v float64) string {
	return name + "='" + formatNumber(v) + "'"
}

func formatNumber(v float64) string {
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}
