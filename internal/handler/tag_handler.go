package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"noteful/backend/internal/model"
	"noteful/backend/internal/service"
)

type TagHandler struct {
	service service.TagService
}

type tagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewTagHandler(service service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tags", h.List)
	g.GET("/tags/:id", h.Get)
	g.POST("/tags", h.Create)
	g.PUT("/tags/:id", h.Update)
	g.DELETE("/tags/:id", h.Delete)
}

// List returns all tags ordered by name.
// @Summary List tags
// @Description Get a list of all tags
// @Tags tags
// @Produce json
// @Success 200 {array} tagResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, toTagResponse(tag))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a single tag.
// @Summary Get a tag
// @Description Get one tag by its id
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} tagResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /tags/{id} [get]
func (h *TagHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	tag, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTagResponse(tag))
}

// Create creates a new tag.
// @Summary Create a tag
// @Description Create a new tag for labelling notes
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body tagRequest true "Tag creation request"
// @Success 201 {object} tagResponse
// @Failure 400 {object} errorResponse
// @Router /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	tag, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/tags/"+idToString(tag.ID))
	return c.JSON(http.StatusCreated, toTagResponse(tag))
}

// Update renames an existing tag.
// @Summary Update a tag
// @Description Update the name of an existing tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body tagRequest true "Tag update request"
// @Success 200 {object} tagResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /tags/{id} [put]
func (h *TagHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	tag, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTagResponse(tag))
}

// Delete deletes a tag and strips its id from every note that carries
// it. Deleting an id with no tag behind it still returns 204.
// @Summary Delete a tag
// @Description Delete a tag and remove it from all notes referencing it
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toTagResponse(tag model.Tag) tagResponse {
	return tagResponse{
		ID:        idToString(tag.ID),
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: tag.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
