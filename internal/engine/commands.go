package engine

import (
	"encoding/json"

	"github.com/inamate/svgscene/internal/geometry"
)

// HitTest returns the id of the topmost top-level shape whose bounding box
// contains the point, or an empty string.
func HitTest(sg *SceneGraph, x, y float64) string {
	if sg == nil {
		return ""
	}

	// Later children paint over earlier ones
	for i := len(sg.Nodes) - 1; i >= 0; i-- {
		node := sg.Nodes[i]
		if node.Bounds.IsEmpty() {
			continue
		}
		if node.Bounds.Contains(x, y) {
			return node.ID
		}
	}
	return ""
}

// GetSelectionBounds returns the combined bounding box of the given object IDs.
func GetSelectionBounds(sg *SceneGraph, objectIDs []string) geometry.Rect {
	if sg == nil || len(objectIDs) == 0 {
		return geometry.Rect{}
	}

	var result geometry.Rect
	for _, id := range objectIDs {
		node, ok := sg.NodesByID[id]
		if !ok || node.Bounds.IsEmpty() {
			continue
		}
		result = result.Union(node.Bounds)
	}
	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geometry.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
