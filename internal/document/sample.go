package document

import (
	"encoding/json"
	"time"

	"github.com/inamate/svgscene/internal/typeid"
)

// NewSampleDocument returns a drawing that exercises every shape type and a
// mask.
func NewSampleDocument(drawingID string) *InDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	maskID := typeid.NewMaskID()
	rectID := typeid.NewShapeID()
	circleID := typeid.NewShapeID()
	ellipseID := typeid.NewShapeID()
	hexagonID := typeid.NewShapeID()
	pentagonID := typeid.NewShapeID()
	maskRectID := typeid.NewShapeID()
	maskCircleID := typeid.NewShapeID()

	return &InDocument{
		Drawing: Drawing{
			ID:        drawingID,
			Name:      "Untitled",
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			Profile:   &Profile{Precision: 0, ShapeRenderingHint: true},
			Style:     map[string]string{"background": "#1a1a2e"},
			Children:  []string{rectID, circleID, ellipseID, hexagonID, pentagonID},
		},
		Mask: &Mask{
			ID:       maskID,
			Children: []string{maskRectID, maskCircleID},
		},
		Objects: map[string]ObjectNode{
			rectID: {
				ID:    rectID,
				Type:  ObjectTypeRect,
				Style: map[string]string{"fill": "#e94560", "stroke": "#000000"},
				Data:  json.RawMessage(`{"x": 200, "y": 200, "width": 200, "height": 150}`),
			},
			circleID: {
				ID:     circleID,
				Type:   ObjectTypeCircle,
				MaskID: maskID,
				Style:  map[string]string{"fill": "#0f3460"},
				Data:   json.RawMessage(`{"x": 500, "y": 180, "r": 90}`),
			},
			ellipseID: {
				ID:    ellipseID,
				Type:  ObjectTypeEllipse,
				Style: map[string]string{"fill": "#16213e", "stroke": "#ffffff"},
				Data:  json.RawMessage(`{"x": 760, "y": 200, "rx": 120, "ry": 80}`),
			},
			hexagonID: {
				ID:    hexagonID,
				Type:  ObjectTypePolygon,
				Style: map[string]string{"fill": "#53d769"},
				Data:  json.RawMessage(`{"sides": 6, "size": 60, "x": 240, "y": 420, "rotation": 30}`),
			},
			pentagonID: {
				ID:    pentagonID,
				Type:  ObjectTypeBoundedPolygon,
				Style: map[string]string{"fill": "#f5a623", "stroke": "#c78400"},
				Data:  json.RawMessage(`{"x": 520, "y": 420, "width": 160, "height": 110, "sides": 5, "rotation": -90}`),
			},
			maskRectID: {
				ID:    maskRectID,
				Type:  ObjectTypeRect,
				Style: map[string]string{"fill": "white"},
				Data:  json.RawMessage(`{"x": 0, "y": 0, "width": 1280, "height": 720}`),
			},
			maskCircleID: {
				ID:    maskCircleID,
				Type:  ObjectTypeCircle,
				Style: map[string]string{"fill": "black"},
				Data:  json.RawMessage(`{"x": 560, "y": 240, "r": 30}`),
			},
		},
	}
}
