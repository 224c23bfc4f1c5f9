package drawing

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgscene/internal/db"
	"github.com/inamate/svgscene/internal/document"
)

type memStore struct {
	mu       sync.Mutex
	drawings map[string]db.Drawing
}

func newMemStore() *memStore {
	return &memStore{drawings: make(map[string]db.Drawing)}
}

func (m *memStore) CreateDrawing(_ context.Context, arg db.CreateDrawingParams) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	d := db.Drawing{
		ID:        arg.ID,
		OwnerID:   arg.OwnerID,
		Name:      arg.Name,
		Version:   1,
		Document:  arg.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.drawings[d.ID] = d
	return d, nil
}

func (m *memStore) GetDrawing(_ context.Context, id string) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drawings[id]
	if !ok {
		return db.Drawing{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *memStore) ListDrawingsForOwner(_ context.Context, ownerID string) ([]db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Drawing
	for _, d := range m.drawings {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) UpdateDrawing(_ context.Context, arg db.UpdateDrawingParams) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drawings[arg.ID]
	if !ok {
		return db.Drawing{}, pgx.ErrNoRows
	}
	d.Name = arg.Name
	d.Document = arg.Document
	d.Version++
	d.UpdatedAt = time.Now()
	m.drawings[d.ID] = d
	return d, nil
}

func (m *memStore) DeleteDrawing(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drawings, id)
	return nil
}

type published struct {
	drawingID string
	markup    string
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *recordingPublisher) Publish(drawingID, markup string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{drawingID, markup})
}

func rectDocument(t *testing.T) *document.InDocument {
	t.Helper()
	doc := document.NewEmptyDocument("", "")
	obj, err := document.NewObject("r1", document.ObjectTypeRect, document.RectData{X: 0, Y: 0, Width: 10, Height: 10})
	require.NoError(t, err)
	doc.Objects["r1"] = obj
	doc.Drawing.Children = []string{"r1"}
	return doc
}

func TestServiceCreateEmpty(t *testing.T) {
	svc := NewService(newMemStore(), nil)

	d, err := svc.Create(context.Background(), "user_1", "empty", nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.ID, "drawing_"))
	assert.Equal(t, "empty", d.Name)
	assert.Equal(t, 1, d.Version)
	require.NotNil(t, d.Document)
	assert.Equal(t, d.ID, d.Document.Drawing.ID)
	assert.Empty(t, d.Document.Drawing.Children)
}

func TestServiceCreateRejectsInvalidDocument(t *testing.T) {
	svc := NewService(newMemStore(), nil)

	doc := document.NewEmptyDocument("", "")
	doc.Drawing.Children = []string{"missing"}

	_, err := svc.Create(context.Background(), "user_1", "bad", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, document.ErrUnknownObject)
}

func TestServiceGetOwnership(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	ctx := context.Background()

	d, err := svc.Create(ctx, "user_1", "mine", rectDocument(t))
	require.NoError(t, err)

	got, err := svc.Get(ctx, d.ID, "user_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.Document.Drawing.Children)

	_, err = svc.Get(ctx, d.ID, "user_2")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "drawing_missing", "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdatePublishesMarkup(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newMemStore(), pub)
	ctx := context.Background()

	d, err := svc.Create(ctx, "user_1", "live", nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID, "user_1", rectDocument(t))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "live", updated.Name)
	assert.Equal(t, 2, updated.Document.Drawing.Version)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, d.ID, pub.msgs[0].drawingID)
	assert.Contains(t, pub.msgs[0].markup, "<rect shape-rendering='optimizeSpeed' x='0' y='0' width='10' height='10'/>")
}

func TestServiceUpdateInvalidDoesNotPublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newMemStore(), pub)
	ctx := context.Background()

	d, err := svc.Create(ctx, "user_1", "live", nil)
	require.NoError(t, err)

	doc := document.NewEmptyDocument("", "")
	obj, err := document.NewObject("p", document.ObjectTypePolygon, document.PolygonData{Sides: 2, Size: 10})
	require.NoError(t, err)
	doc.Objects["p"] = obj
	doc.Drawing.Children = []string{"p"}

	_, err = svc.Update(ctx, d.ID, "user_1", doc)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Empty(t, pub.msgs)
}

func TestServiceRenderAndDelete(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	ctx := context.Background()

	d, err := svc.Create(ctx, "user_1", "r", rectDocument(t))
	require.NoError(t, err)

	markup, err := svc.Render(ctx, d.ID, "user_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(markup, "<svg"))
	assert.True(t, strings.HasSuffix(markup, "</svg>\n"))

	list, err := svc.List(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Document)

	assert.ErrorIs(t, svc.Delete(ctx, d.ID, "user_2"), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, d.ID, "user_1"))

	_, err = svc.Render(ctx, d.ID, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
}
