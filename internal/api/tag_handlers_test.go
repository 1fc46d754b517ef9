package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attachTag posts a tag name to a book and returns the decoded response.
func (ts *testServer) attachTag(t *testing.T, bookID, name string) AttachTagResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/books/"+bookID+"/tags", map[string]any{"name": name})
	require.Equal(t, http.StatusOK, resp.Code, "attach failed: %s", resp.Body.String())

	var attached AttachTagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &attached))
	return attached
}

func TestAttachTag_NormalizesName(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})

	attached := ts.attachTag(t, book.ID, "  Space   Opera  ")

	assert.True(t, attached.Created)
	assert.Equal(t, "Space Opera", attached.Tag.Name)
}

func TestAttachTag_CaseInsensitiveIdentity(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})

	first := ts.attachTag(t, book.ID, "Sci-Fi")
	second := ts.attachTag(t, book.ID, "sci-fi")

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Tag.ID, second.Tag.ID)
	// The first writer's casing wins.
	assert.Equal(t, "Sci-Fi", second.Tag.Name)

	resp := ts.api.Get("/api/v1/books/" + book.ID + "/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	var tags BookTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tags))
	assert.Len(t, tags.Tags, 1)
}

func TestAttachTag_EmptyName(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})

	resp := ts.api.Post("/api/v1/books/"+book.ID+"/tags", map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAttachTag_BookNotFound(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.api.Post("/api/v1/books/book-missing/tags", map[string]any{"name": "fantasy"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDetachTag_Idempotent(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})

	attached := ts.attachTag(t, book.ID, "fantasy")

	resp := ts.api.Delete("/api/v1/books/" + book.ID + "/tags/" + attached.Tag.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Detaching again is a no-op, not an error.
	resp = ts.api.Delete("/api/v1/books/" + book.ID + "/tags/" + attached.Tag.ID)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestDetachTag_UnknownTag(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})

	resp := ts.api.Delete("/api/v1/books/" + book.ID + "/tags/tag-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListTags_OnlyAttached(t *testing.T) {
	ts := setupTestServer(t, nil, nil)
	book := ts.createBook(t, map[string]any{"title": "Mort"})
	other := ts.createBook(t, map[string]any{"title": "Piranesi"})

	ts.attachTag(t, book.ID, "fantasy")
	orphaned := ts.attachTag(t, other.ID, "abandoned")

	// Detaching the only association hides the tag from the catalog list.
	resp := ts.api.Delete("/api/v1/books/" + other.ID + "/tags/" + orphaned.Tag.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Tags, 1)
	assert.Equal(t, "fantasy", list.Tags[0].Name)
}
