package engine

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/svgscene/internal/document"
	"github.com/inamate/svgscene/internal/style"
	"github.com/inamate/svgscene/internal/svg"
)

// BuildSceneGraph builds the svg tree for doc. Construction is the only
// fallible step: unknown objects, unknown types, malformed data, degenerate
// polygons and an empty mask id all fail here.
func BuildSceneGraph(doc *document.InDocument, opts ...svg.Option) (*SceneGraph, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	sg := NewSceneGraph(opts...)
	sg.Root.Properties().SetMap(doc.Drawing.Style)

	// the drawing's own profile, when set, wins over any profile in opts
	shapeOpts := opts
	if p := doc.Drawing.Profile; p != nil {
		shapeOpts = make([]svg.Option, 0, len(opts)+1)
		shapeOpts = append(shapeOpts, opts...)
		shapeOpts = append(shapeOpts, svg.WithProfile(svg.Profile{
			Precision:          p.Precision,
			ShapeRenderingHint: p.ShapeRenderingHint,
		}))
	}

	if doc.Mask != nil {
		mask, err := svg.NewMask(doc.Mask.ID, opts...)
		if err != nil {
			return nil, err
		}
		mask.Properties().SetMap(doc.Mask.Style)

		for _, id := range doc.Mask.Children {
			node, err := buildNode(doc.Objects[id], shapeOpts)
			if err != nil {
				return nil, err
			}
			node.InMask = true
			sg.NodesByID[id] = node
			mask.AddChild(node.Shape)
		}
		sg.Root.SetMask(mask)
	}

	for _, id := range doc.Drawing.Children {
		node, err := buildNode(doc.Objects[id], shapeOpts)
		if err != nil {
			return nil, err
		}
		sg.NodesByID[id] = node
		sg.Nodes = append(sg.Nodes, node)
		sg.Root.AddChild(node.Shape)
	}

	return sg, nil
}

type styledShape interface {
	svg.Maskable
	Properties() *style.Properties
}

// buildNode converts a document object into a shape node.
func buildNode(obj document.ObjectNode, opts []svg.Option) (*SceneNode, error) {
	shape, err := newShape(obj, opts)
	if err != nil {
		return nil, fmt.Errorf("build %s %q: %w", obj.Type, obj.ID, err)
	}

	shape.Properties().SetMap(obj.Style)
	if obj.MaskID != "" {
		shape.SetMaskID(obj.MaskID)
	}

	return &SceneNode{
		ID:     obj.ID,
		Type:   obj.Type,
		Shape:  shape,
		Bounds: shape.BoundingBox(),
		MaskID: obj.MaskID,
	}, nil
}

func newShape(obj document.ObjectNode, opts []svg.Option) (styledShape, error) {
	switch obj.Type {
	case document.ObjectTypeRect:
		var d document.RectData
		if err := unmarshalData(obj.Data, &d); err != nil {
			return nil, err
		}
		return svg.NewRect(d.X, d.Y, d.Width, d.Height, opts...), nil

	case document.ObjectTypeCircle:
		var d document.CircleData
		if err := unmarshalData(obj.Data, &d); err != nil {
			return nil, err
		}
		return svg.NewCircle(d.X, d.Y, d.R, opts...), nil

	case document.ObjectTypeEllipse:
		var d document.EllipseData
		if err := unmarshalData(obj.Data, &d); err != nil {
			return nil, err
		}
		return svg.NewEllipse(d.X, d.Y, d.RX, d.RY, opts...), nil

	case document.ObjectTypePolygon:
		var d document.PolygonData
		if err := unmarshalData(obj.Data, &d); err != nil {
			return nil, err
		}
		p, err := svg.NewPolygon(d.Sides, d.Size, d.X, d.Y, d.Rotation, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil

	case document.ObjectTypeBoundedPolygon:
		var d document.BoundedPolygonData
		if err := unmarshalData(obj.Data, &d); err != nil {
			return nil, err
		}
		p, err := svg.NewBoundedPolygon(d.X, d.Y, d.Width, d.Height, d.Sides, d.Rotation, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("%w: %q", document.ErrUnknownType, obj.Type)
	}
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
