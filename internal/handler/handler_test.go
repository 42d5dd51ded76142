package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"noteful/backend/internal/handler"
	"noteful/backend/internal/repository"
	"noteful/backend/internal/repository/testutil"
	"noteful/backend/internal/service"
)

// newTestAPI wires the full stack over a throwaway database.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	db := testutil.NewTestDB(t)
	folderRepo := repository.NewFolderRepository(db)
	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	e := echo.New()
	api := e.Group("/api")
	handler.NewFolderHandler(service.NewFolderService(folderRepo)).RegisterRoutes(api)
	handler.NewNoteHandler(service.NewNoteService(noteRepo)).RegisterRoutes(api)
	handler.NewTagHandler(service.NewTagService(tagRepo, noteRepo)).RegisterRoutes(api)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var obj map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
	return obj
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var arr []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &arr))
	return arr
}

func TestFolders_CreateValidationAndDuplicate(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/folders", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "need name", decodeObject(t, rec)["message"])

	rec = doJSON(e, http.MethodPost, "/api/folders", `{"name":"Work"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderLocation))
	body := decodeObject(t, rec)
	require.Equal(t, "Work", body["name"])
	require.NotEmpty(t, body["id"])

	rec = doJSON(e, http.MethodPost, "/api/folders", `{"name":"Work"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "folder name exists", decodeObject(t, rec)["message"])
}

func TestFolders_GetInvalidAndMissing(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/folders/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "The `id` is not valid", decodeObject(t, rec)["message"])

	rec = doJSON(e, http.MethodGet, "/api/folders/12345", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "folder not found", decodeObject(t, rec)["message"])
}

func TestFolders_ListOrderedByName(t *testing.T) {
	e := newTestAPI(t)

	for _, name := range []string{"Personal", "Archive", "Work"} {
		rec := doJSON(e, http.MethodPost, "/api/folders", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/folders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	folders := decodeArray(t, rec)
	require.Len(t, folders, 3)
	require.Equal(t, "Archive", folders[0]["name"])
	require.Equal(t, "Personal", folders[1]["name"])
	require.Equal(t, "Work", folders[2]["name"])
}

func TestFolders_DeleteIdempotent(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodDelete, "/api/folders/99999", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/folders/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotes_CreateMinimal(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/notes", `{"title":"T"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderLocation))
	body := decodeObject(t, rec)
	require.Equal(t, "T", body["title"])
	require.Equal(t, []any{}, body["tags"])
	require.NotContains(t, body, "folderId")
	require.NotContains(t, body, "content")
}

func TestNotes_CreateMissingTitle(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/notes", `{"content":"body"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "You need a title", decodeObject(t, rec)["message"])
}

func TestNotes_GetInvalidID(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/notes/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "The `id` is not valid", decodeObject(t, rec)["message"])
}

func TestNotes_SearchAndFolderFilter(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/folders", `{"name":"Work"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	folderID := decodeObject(t, rec)["id"].(string)

	rec = doJSON(e, http.MethodPost, "/api/notes", `{"title":"Cats at work","folderId":"`+folderID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/notes", `{"title":"Dogs","content":"no cats here"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/notes", `{"title":"Groceries"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/notes?searchTerm=CATS", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeArray(t, rec), 2)

	rec = doJSON(e, http.MethodGet, "/api/notes?searchTerm=cats&folderId="+folderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decodeArray(t, rec)
	require.Len(t, notes, 1)
	require.Equal(t, "Cats at work", notes[0]["title"])

	rec = doJSON(e, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeArray(t, rec), 3)
}

func TestNotes_UpdateMerge(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/folders", `{"name":"Work"}`)
	folderID := decodeObject(t, rec)["id"].(string)
	rec = doJSON(e, http.MethodPost, "/api/tags", `{"name":"urgent"}`)
	tagID := decodeObject(t, rec)["id"].(string)

	rec = doJSON(e, http.MethodPost, "/api/notes",
		`{"title":"T","content":"old","folderId":"`+folderID+`","tags":["`+tagID+`"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	noteID := decodeObject(t, rec)["id"].(string)

	// Updating title+content only leaves folderId and tags untouched
	rec = doJSON(e, http.MethodPut, "/api/notes/"+noteID, `{"title":"T","content":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeObject(t, rec)
	require.Equal(t, "new", body["content"])
	require.Equal(t, folderID, body["folderId"])
	require.Equal(t, []any{tagID}, body["tags"])

	// Update without a title is rejected
	rec = doJSON(e, http.MethodPut, "/api/notes/"+noteID, `{"content":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "You need a title", decodeObject(t, rec)["message"])

	// Updating a missing note is a 404
	rec = doJSON(e, http.MethodPut, "/api/notes/99999", `{"title":"T"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTags_GetMissingIsExplicit404(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/tags/12345", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "tag not found", decodeObject(t, rec)["message"])
}

func TestTags_CreateDuplicate(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/tags", `{"name":"urgent"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/tags", `{"name":"urgent"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "tag name exists", decodeObject(t, rec)["message"])
}

func TestTags_DeleteCascadesToNotes(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/tags", `{"name":"urgent"}`)
	urgent := decodeObject(t, rec)["id"].(string)
	rec = doJSON(e, http.MethodPost, "/api/tags", `{"name":"keep"}`)
	keep := decodeObject(t, rec)["id"].(string)

	rec = doJSON(e, http.MethodPost, "/api/notes", `{"title":"A","tags":["`+urgent+`","`+keep+`"]}`)
	noteA := decodeObject(t, rec)["id"].(string)
	rec = doJSON(e, http.MethodPost, "/api/notes", `{"title":"B","tags":["`+urgent+`"]}`)
	noteB := decodeObject(t, rec)["id"].(string)

	rec = doJSON(e, http.MethodDelete, "/api/tags/"+urgent, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/notes/"+noteA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{keep}, decodeObject(t, rec)["tags"])

	rec = doJSON(e, http.MethodGet, "/api/notes/"+noteB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{}, decodeObject(t, rec)["tags"])

	// The tag itself is gone
	rec = doJSON(e, http.MethodGet, "/api/tags/"+urgent, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
