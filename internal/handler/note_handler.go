package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"noteful/backend/internal/model"
	"noteful/backend/internal/service"
)

type NoteHandler struct {
	service service.NoteService
}

type noteRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	FolderID *string  `json:"folderId"`
	Tags     []string `json:"tags"`
}

type noteResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   *string  `json:"content,omitempty"`
	FolderID  *string  `json:"folderId,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func NewNoteHandler(service service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notes", h.List)
	g.GET("/notes/:id", h.Get)
	g.POST("/notes", h.Create)
	g.PUT("/notes/:id", h.Update)
	g.DELETE("/notes/:id", h.Delete)
}

// List returns notes in insertion order, optionally filtered. searchTerm
// matches title or content case-insensitively; folderId narrows the
// result to one folder. A folderId that is not a well-formed id is
// ignored rather than rejected, listing never fails on input.
// @Summary List notes
// @Description Search notes by term and/or folder
// @Tags notes
// @Produce json
// @Param searchTerm query string false "Substring to match against title or content"
// @Param folderId query string false "Folder ID to filter by"
// @Success 200 {array} noteResponse
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	var params service.NoteListParams
	if term := c.QueryParam("searchTerm"); term != "" {
		params.SearchTerm = &term
	}
	if raw := c.QueryParam("folderId"); raw != "" {
		if folderID, err := parseID(raw); err == nil {
			params.FolderID = &folderID
		}
	}

	notes, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a single note.
// @Summary Get a note
// @Description Get one note by its id
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	note, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Create creates a new note.
// @Summary Create a note
// @Description Create a new note, optionally filed in a folder and tagged
// @Tags notes
// @Accept json
// @Produce json
// @Param note body noteRequest true "Note creation request"
// @Success 201 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	params := service.NoteCreateParams{
		Content:  req.Content,
		FolderID: parseFolderID(req.FolderID),
		TagIDs:   parseTagIDs(req.Tags),
	}
	if req.Title != nil {
		params.Title = *req.Title
	}

	note, err := h.service.Create(c.Request().Context(), params)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/notes/"+idToString(note.ID))
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Update applies a merge-update: only the fields present in the payload
// are written, except title which is required on every update.
// @Summary Update a note
// @Description Update the fields present in the payload; omitted fields keep their value
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param note body noteRequest true "Note update request"
// @Success 200 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	params := service.NoteUpdateParams{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: parseFolderID(req.FolderID),
		TagIDs:   parseTagIDs(req.Tags),
	}

	note, err := h.service.Update(c.Request().Context(), id, params)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete deletes a note. Deleting an id with no note behind it still
// returns 204.
// @Summary Delete a note
// @Description Delete an existing note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseFolderID keeps a folder reference only when it is a well-formed
// id; anything else is dropped rather than rejected.
func parseFolderID(raw *string) *int64 {
	if raw == nil {
		return nil
	}
	id, err := parseID(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// parseTagIDs keeps the well-formed tag ids and drops the rest. The
// result is non-nil whenever the input is, so an explicit empty list
// still clears a note's tags on update.
func parseTagIDs(raw []string) []int64 {
	if raw == nil {
		return nil
	}
	tagIDs := make([]int64, 0, len(raw))
	for _, s := range raw {
		if id, err := parseID(s); err == nil {
			tagIDs = append(tagIDs, id)
		}
	}
	return tagIDs
}

func toNoteResponse(note model.Note) noteResponse {
	tags := make([]string, 0, len(note.TagIDs))
	for _, tagID := range note.TagIDs {
		tags = append(tags, idToString(tagID))
	}
	return noteResponse{
		ID:        idToString(note.ID),
		Title:     note.Title,
		Content:   note.Content,
		FolderID:  idPtrToString(note.FolderID),
		Tags:      tags,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
