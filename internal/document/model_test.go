package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDocumentValidates(t *testing.T) {
	doc := NewSampleDocument("drawing_sample")
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Drawing.Children, 5)
	require.NotNil(t, doc.Mask)
	assert.Len(t, doc.Mask.Children, 2)
}

func TestValidateUnknownObject(t *testing.T) {
	doc := NewEmptyDocument("drawing_1", "empty")
	require.NoError(t, doc.Validate())

	doc.Drawing.Children = append(doc.Drawing.Children, "missing")
	assert.ErrorIs(t, doc.Validate(), ErrUnknownObject)
}

func TestValidateUnknownType(t *testing.T) {
	doc := NewEmptyDocument("drawing_1", "bad")
	doc.Objects["s1"] = ObjectNode{ID: "s1", Type: "Star", Data: json.RawMessage(`{}`)}
	doc.Mask = &Mask{ID: "m1", Children: []string{"s1"}}
	assert.ErrorIs(t, doc.Validate(), ErrUnknownType)
}

func TestValidateMissingDrawingID(t *testing.T) {
	doc := NewEmptyDocument("", "anonymous")
	assert.Error(t, doc.Validate())
}

func TestNewObjectRoundTrip(t *testing.T) {
	obj, err := NewObject("s1", ObjectTypePolygon, PolygonData{Sides: 5, Size: 10, Rotation: 45})
	require.NoError(t, err)

	var data PolygonData
	require.NoError(t, json.Unmarshal(obj.Data, &data))
	assert.Equal(t, 5, data.Sides)
	assert.Equal(t, 45.0, data.Rotation)
}
