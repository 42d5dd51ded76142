package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"noteful/backend/internal/model"
	"noteful/backend/internal/service"
)

type FolderHandler struct {
	service service.FolderService
}

type folderRequest struct {
	Name string `json:"name"`
}

type folderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewFolderHandler(service service.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

func (h *FolderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/folders", h.List)
	g.GET("/folders/:id", h.Get)
	g.POST("/folders", h.Create)
	g.PUT("/folders/:id", h.Update)
	g.DELETE("/folders/:id", h.Delete)
}

// List returns all folders ordered by name.
// @Summary List folders
// @Description Get a list of all folders
// @Tags folders
// @Produce json
// @Success 200 {array} folderResponse
// @Router /folders [get]
func (h *FolderHandler) List(c echo.Context) error {
	folders, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]folderResponse, 0, len(folders))
	for _, folder := range folders {
		response = append(response, toFolderResponse(folder))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a single folder.
// @Summary Get a folder
// @Description Get one folder by its id
// @Tags folders
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} folderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders/{id} [get]
func (h *FolderHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	folder, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(folder))
}

// Create creates a new folder.
// @Summary Create a folder
// @Description Create a new folder to organize notes
// @Tags folders
// @Accept json
// @Produce json
// @Param folder body folderRequest true "Folder creation request"
// @Success 201 {object} folderResponse
// @Failure 400 {object} errorResponse
// @Router /folders [post]
func (h *FolderHandler) Create(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	folder, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/folders/"+idToString(folder.ID))
	return c.JSON(http.StatusCreated, toFolderResponse(folder))
}

// Update renames an existing folder.
// @Summary Update a folder
// @Description Update the name of an existing folder
// @Tags folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param folder body folderRequest true "Folder update request"
// @Success 200 {object} folderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders/{id} [put]
func (h *FolderHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	folder, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(folder))
}

// Delete deletes a folder. Deleting an id with no folder behind it still
// returns 204.
// @Summary Delete a folder
// @Description Delete an existing folder; notes in it are left alone
// @Tags folders
// @Param id path string true "Folder ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Router /folders/{id} [delete]
func (h *FolderHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, invalidIDMessage)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toFolderResponse(folder model.Folder) folderResponse {
	return folderResponse{
		ID:        idToString(folder.ID),
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: folder.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
