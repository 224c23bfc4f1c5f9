package engine

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/svgscene/internal/document"
	"github.com/inamate/svgscene/internal/svg"
)

// Engine owns a drawing document and its built scene graph. It is the
// stateful surface used by the WASM bridge.
type Engine struct {
	doc        *document.InDocument
	sceneGraph *SceneGraph
	opts       []svg.Option

	// Selection state (backend owns this)
	selection []string

	// Dirty flag - scene graph needs rebuild
	dirty bool
}

// NewEngine creates a new engine instance. opts are passed to every node
// built from a loaded document.
func NewEngine(opts ...svg.Option) *Engine {
	return &Engine{opts: opts, dirty: true}
}

// LoadDocument loads a document from JSON and resets the selection.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.InDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return e.SetDocument(&doc)
}

// UpdateDocument replaces the document while keeping the selection.
func (e *Engine) UpdateDocument(jsonData string) error {
	selection := e.selection
	if err := e.LoadDocument(jsonData); err != nil {
		return err
	}
	e.selection = selection
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument(drawingID string) error {
	return e.SetDocument(document.NewSampleDocument(drawingID))
}

// SetDocument builds doc and makes it current. On error the previous
// document stays loaded.
func (e *Engine) SetDocument(doc *document.InDocument) error {
	sg, err := BuildSceneGraph(doc, e.opts...)
	if err != nil {
		return err
	}

	e.doc = doc
	e.sceneGraph = sg
	e.selection = nil
	e.dirty = false
	return nil
}

// SetSelection sets the selected object IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// Render returns the markup of the current drawing, or "" when none is loaded.
func (e *Engine) Render() (string, error) {
	if e.doc == nil {
		return "", nil
	}

	if e.dirty {
		sg, err := BuildSceneGraph(e.doc, e.opts...)
		if err != nil {
			return "", err
		}
		e.sceneGraph = sg
		e.dirty = false
	}

	return e.sceneGraph.Markup(), nil
}

// Invalidate forces the next Render to rebuild the scene graph.
func (e *Engine) Invalidate() {
	e.dirty = true
}

// HitTest performs a hit test at the given coordinates.
// Returns the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.sceneGraph, x, y)
}

// GetSelectionBounds returns the bounding box of the current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	return RectToJSON(GetSelectionBounds(e.sceneGraph, e.selection))
}

// GetBounds returns the bounding box of one object as JSON, or "{}" when
// the object is unknown.
func (e *Engine) GetBounds(objectID string) string {
	if e.sceneGraph == nil {
		return "{}"
	}
	node, ok := e.sceneGraph.NodesByID[objectID]
	if !ok {
		return "{}"
	}
	return RectToJSON(node.Bounds)
}

// GetDrawingBounds returns the union of all top-level shapes as JSON.
func (e *Engine) GetDrawingBounds() string {
	if e.sceneGraph == nil {
		return "{}"
	}
	return RectToJSON(e.sceneGraph.Bounds())
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}
