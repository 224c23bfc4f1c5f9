//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/svgscene/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	api := js.Global().Get("Object").New()

	// Commands
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("updateDocument", js.FuncOf(updateDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("setSelection", js.FuncOf(setSelection))

	// Queries
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getBounds", js.FuncOf(getBounds))
	api.Set("getDrawingBounds", js.FuncOf(getDrawingBounds))
	api.Set("getDocument", js.FuncOf(getDocument))
	api.Set("getSelection", js.FuncOf(getSelection))

	js.Global().Set("svgsceneEngine", api)
	js.Global().Set("svgsceneWasmReady", js.ValueOf(true))

	select {}
}

func result(err error) any {
	if err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func loadDocument(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func updateDocument(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document JSON"})
	}
	return result(eng.UpdateDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) any {
	drawingID := "drawing_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		drawingID = args[0].String()
	}
	return result(eng.LoadSampleDocument(drawingID))
}

func setSelection(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func render(this js.Value, args []js.Value) any {
	markup, err := eng.Render()
	if err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}
	return js.ValueOf(markup)
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getBounds(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.GetBounds(args[0].String()))
}

func getDrawingBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetDrawingBounds())
}

func getDocument(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelection())
}
