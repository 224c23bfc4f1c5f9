package drawing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inamate/svgscene/internal/db"
	"github.com/inamate/svgscene/internal/document"
	"github.com/inamate/svgscene/internal/engine"
	"github.com/inamate/svgscene/internal/typeid"
)

var (
	ErrNotFound        = errors.New("drawing not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidDocument = errors.New("invalid document")
)

// Store is the subset of db.Queries the service needs.
type Store interface {
	CreateDrawing(ctx context.Context, arg db.CreateDrawingParams) (db.Drawing, error)
	GetDrawing(ctx context.Context, id string) (db.Drawing, error)
	ListDrawingsForOwner(ctx context.Context, ownerID string) ([]db.Drawing, error)
	UpdateDrawing(ctx context.Context, arg db.UpdateDrawingParams) (db.Drawing, error)
	DeleteDrawing(ctx context.Context, id string) error
}

// Publisher receives freshly rendered markup after a drawing changes.
type Publisher interface {
	Publish(drawingID, markup string)
}

type Service struct {
	store     Store
	publisher Publisher
}

func NewService(store Store, publisher Publisher) *Service {
	return &Service{store: store, publisher: publisher}
}

type Drawing struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	OwnerID   string               `json:"ownerId"`
	Version   int                  `json:"version"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
	Document  *document.InDocument `json:"document,omitempty"`
}

// Create stores a new drawing. A nil doc starts an empty drawing; otherwise
// the document is given the new drawing's id and must build cleanly.
func (s *Service) Create(ctx context.Context, ownerID, name string, doc *document.InDocument) (*Drawing, error) {
	drawingID := typeid.NewDrawingID()
	now := time.Now().UTC().Format(time.RFC3339)

	if doc == nil {
		doc = document.NewEmptyDocument(drawingID, name)
	}
	doc.Drawing.ID = drawingID
	doc.Drawing.Name = name
	doc.Drawing.CreatedAt = now
	doc.Drawing.UpdatedAt = now

	docJSON, err := encode(doc)
	if err != nil {
		return nil, err
	}

	row, err := s.store.CreateDrawing(ctx, db.CreateDrawingParams{
		ID:       drawingID,
		OwnerID:  ownerID,
		Name:     name,
		Document: docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}

	return toDrawing(row, doc), nil
}

func (s *Service) Get(ctx context.Context, drawingID, userID string) (*Drawing, error) {
	row, err := s.owned(ctx, drawingID, userID)
	if err != nil {
		return nil, err
	}

	doc, err := decode(row.Document)
	if err != nil {
		return nil, err
	}
	return toDrawing(row, doc), nil
}

// List returns the user's drawings without their documents.
func (s *Service) List(ctx context.Context, userID string) ([]Drawing, error) {
	rows, err := s.store.ListDrawingsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings := make([]Drawing, len(rows))
	for i, row := range rows {
		drawings[i] = *toDrawing(row, nil)
	}
	return drawings, nil
}

// Update replaces the drawing's document and publishes the new markup.
func (s *Service) Update(ctx context.Context, drawingID, userID string, doc *document.InDocument) (*Drawing, error) {
	row, err := s.owned(ctx, drawingID, userID)
	if err != nil {
		return nil, err
	}

	doc.Drawing.ID = drawingID
	if doc.Drawing.Name == "" {
		doc.Drawing.Name = row.Name
	}
	doc.Drawing.CreatedAt = row.CreatedAt.UTC().Format(time.RFC3339)
	doc.Drawing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	doc.Drawing.Version = int(row.Version) + 1

	sg, err := build(doc)
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	updated, err := s.store.UpdateDrawing(ctx, db.UpdateDrawingParams{
		ID:       drawingID,
		Name:     doc.Drawing.Name,
		Document: docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("update drawing: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(drawingID, sg.Markup())
	}

	return toDrawing(updated, doc), nil
}

func (s *Service) Delete(ctx context.Context, drawingID, userID string) error {
	if _, err := s.owned(ctx, drawingID, userID); err != nil {
		return err
	}
	return s.store.DeleteDrawing(ctx, drawingID)
}

// SceneGraph loads and builds a stored drawing.
func (s *Service) SceneGraph(ctx context.Context, drawingID, userID string) (*engine.SceneGraph, *Drawing, error) {
	d, err := s.Get(ctx, drawingID, userID)
	if err != nil {
		return nil, nil, err
	}
	sg, err := build(d.Document)
	if err != nil {
		return nil, nil, err
	}
	return sg, d, nil
}

// Render returns the markup of a stored drawing.
func (s *Service) Render(ctx context.Context, drawingID, userID string) (string, error) {
	sg, _, err := s.SceneGraph(ctx, drawingID, userID)
	if err != nil {
		return "", err
	}
	return sg.Markup(), nil
}

func (s *Service) owned(ctx context.Context, drawingID, userID string) (db.Drawing, error) {
	row, err := s.store.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Drawing{}, ErrNotFound
		}
		return db.Drawing{}, fmt.Errorf("get drawing: %w", err)
	}
	if row.OwnerID != userID {
		return db.Drawing{}, ErrForbidden
	}
	return row, nil
}

func build(doc *document.InDocument) (*engine.SceneGraph, error) {
	sg, err := engine.BuildSceneGraph(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return sg, nil
}

func encode(doc *document.InDocument) (json.RawMessage, error) {
	if _, err := build(doc); err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

func decode(data json.RawMessage) (*document.InDocument, error) {
	var doc document.InDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

func toDrawing(row db.Drawing, doc *document.InDocument) *Drawing {
	return &Drawing{
		ID:        row.ID,
		Name:      row.Name,
		OwnerID:   row.OwnerID,
		Version:   int(row.Version),
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: row.UpdatedAt.UTC().Format(time.RFC3339),
		Document:  doc,
	}
}
