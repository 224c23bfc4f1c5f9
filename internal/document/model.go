package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownObject = errors.New("unknown object")
	ErrUnknownType   = errors.New("unknown object type")
)

// InDocument is the JSON description of a drawing: a flat object table plus
// the ordering of the root and mask children by id.
type InDocument struct {
	Drawing Drawing               `json:"drawing"`
	Objects map[string]ObjectNode `json:"objects"`
	Mask    *Mask                 `json:"mask,omitempty"`
}

type Drawing struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Version   int               `json:"version"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
	Profile   *Profile          `json:"profile,omitempty"`
	Style     map[string]string `json:"style,omitempty"`
	Children  []string          `json:"children"`
}

// Profile mirrors the renderer's markup profile. A drawing without one is
// rendered with whatever profile the caller builds it with.
type Profile struct {
	Precision          int  `json:"precision"`
	ShapeRenderingHint bool `json:"shapeRenderingHint"`
}

// Mask is the single mask of a drawing. Its children are object ids and
// should not also appear in Drawing.Children.
type Mask struct {
	ID       string            `json:"id"`
	Style    map[string]string `json:"style,omitempty"`
	Children []string          `json:"children"`
}

type ObjectType string

const (
	ObjectTypeRect           ObjectType = "Rect"
	ObjectTypeCircle         ObjectType = "Circle"
	ObjectTypeEllipse        ObjectType = "Ellipse"
	ObjectTypePolygon        ObjectType = "Polygon"
	ObjectTypeBoundedPolygon ObjectType = "BoundedPolygon"
)

// ObjectNode is one shape. Data holds the type-specific geometry.
type ObjectNode struct {
	ID     string            `json:"id"`
	Type   ObjectType        `json:"type"`
	MaskID string            `json:"maskId,omitempty"`
	Style  map[string]string `json:"style,omitempty"`
	Data   json.RawMessage   `json:"data"`
}

type RectData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type CircleData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

type EllipseData struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

type PolygonData struct {
	Sides    int     `json:"sides"`
	Size     float64 `json:"size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type BoundedPolygonData struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Sides    int     `json:"sides"`
	Rotation float64 `json:"rotation"`
}

// Validate checks that every referenced object exists and has a known type.
// Geometry is validated when the scene is built.
func (d *InDocument) Validate() error {
	if d.Drawing.ID == "" {
		return errors.New("drawing id is required")
	}

	check := func(ids []string) error {
		for _, id := range ids {
			obj, ok := d.Objects[id]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownObject, id)
			}
			switch obj.Type {
			case ObjectTypeRect, ObjectTypeCircle, ObjectTypeEllipse, ObjectTypePolygon, ObjectTypeBoundedPolygon:
			default:
				return fmt.Errorf("%w: %q on object %q", ErrUnknownType, obj.Type, id)
			}
		}
		return nil
	}

	if err := check(d.Drawing.Children); err != nil {
		return err
	}
	if d.Mask != nil {
		if err := check(d.Mask.Children); err != nil {
			return fmt.Errorf("mask %q: %w", d.Mask.ID, err)
		}
	}
	return nil
}

// NewObject builds an ObjectNode with data marshaled from v.
func NewObject(id string, typ ObjectType, v any) (ObjectNode, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ObjectNode{}, fmt.Errorf("marshal %s data: %w", typ, err)
	}
	return ObjectNode{ID: id, Type: typ, Data: data}, nil
}

// NewEmptyDocument creates an empty drawing with no profile of its own.
func NewEmptyDocument(drawingID, name string) *InDocument {
	return &InDocument{
		Drawing: Drawing{
			ID:        drawingID,
			Name:      name,
			Version:   1,
			CreatedAt: "", // Will be set by caller
			UpdatedAt: "",
			Children:  []string{},
		},
		Objects: map[string]ObjectNode{},
	}
}
