package drawing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/svgscene/internal/auth"
	"github.com/inamate/svgscene/internal/document"
	"github.com/inamate/svgscene/internal/engine"
	"github.com/inamate/svgscene/internal/export"
	"github.com/inamate/svgscene/internal/geometry"
	"github.com/inamate/svgscene/internal/svg"
)

const svgContentType = "image/svg+xml; charset=utf-8"

type Handler struct {
	service      *Service
	profile      svg.Profile
	maxBodyBytes int64
}

// NewHandler creates the drawing endpoints. profile is applied to documents
// that do not carry their own.
func NewHandler(service *Service, profile svg.Profile, maxBodyBytes int64) *Handler {
	return &Handler{service: service, profile: profile, maxBodyBytes: maxBodyBytes}
}

type createRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document,omitempty"`
}

// Render handles POST /render: a document in, markup out. Nothing is stored.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	doc, err := h.decodeDocument(json.NewDecoder(r.Body).Decode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document: " + err.Error()})
		return
	}
	if doc.Drawing.ID == "" {
		doc.Drawing.ID = "preview"
	}

	sg, err := engine.BuildSceneGraph(doc)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", svgContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sg.Markup()))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	doc := document.NewEmptyDocument("", req.Name)
	doc.Drawing.Profile = h.documentProfile()
	if len(req.Document) > 0 {
		var err error
		doc, err = h.decodeDocument(func(v any) error { return json.Unmarshal(req.Document, v) })
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
			return
		}
	}

	d, err := h.service.Create(r.Context(), userID, req.Name, doc)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	d, err := h.service.Get(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	drawings, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list drawings failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, drawings)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	doc, err := h.decodeDocument(json.NewDecoder(r.Body).Decode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	d, err := h.service.Update(r.Context(), drawingID, userID, doc)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	if err := h.service.Delete(r.Context(), drawingID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Markup handles GET /api/drawings/{drawingId}/svg.
func (h *Handler) Markup(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	markup, err := h.service.Render(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", svgContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markup))
}

// Bounds handles GET /api/drawings/{drawingId}/bounds: the drawing's overall
// box plus one box per shape.
func (h *Handler) Bounds(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	sg, d, err := h.service.SceneGraph(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	type shapeBounds struct {
		ID     string        `json:"id"`
		Type   string        `json:"type"`
		InMask bool          `json:"inMask,omitempty"`
		Bounds geometry.Rect `json:"bounds"`
	}
	shapes := make([]shapeBounds, 0, len(sg.NodesByID))
	for _, node := range sg.Nodes {
		shapes = append(shapes, shapeBounds{ID: node.ID, Type: string(node.Type), Bounds: node.Bounds})
	}
	if d.Document.Mask != nil {
		for _, id := range d.Document.Mask.Children {
			if node, ok := sg.NodesByID[id]; ok {
				shapes = append(shapes, shapeBounds{ID: node.ID, Type: string(node.Type), InMask: true, Bounds: node.Bounds})
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bounds": sg.Bounds(),
		"shapes": shapes,
	})
}

// Export handles GET /api/drawings/{drawingId}/export.svg.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	sg, d, err := h.service.SceneGraph(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", svgContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.ID+`.svg"`)
	if err := export.WriteStandalone(w, d.Name, sg, export.DefaultMargin); err != nil {
		slog.Error("export drawing", "drawing", drawingID, "error", err)
	}
}

// decodeDocument decodes a document and gives it the handler's default
// profile when it carries none.
func (h *Handler) decodeDocument(decode func(any) error) (*document.InDocument, error) {
	var doc document.InDocument
	if err := decode(&doc); err != nil {
		return nil, err
	}
	if doc.Drawing.Profile == nil {
		doc.Drawing.Profile = h.documentProfile()
	}
	return &doc, nil
}

func (h *Handler) documentProfile() *document.Profile {
	return &document.Profile{
		Precision:          h.profile.Precision,
		ShapeRenderingHint: h.profile.ShapeRenderingHint,
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrInvalidDocument):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
