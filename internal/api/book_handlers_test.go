package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createBook posts a book and returns its decoded response.
func (ts *testServer) createBook(t *testing.T, body map[string]any) BookResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", body)
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())

	var book BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	return book
}

func TestCreateBook_Defaults(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{"title": "Piranesi"})

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Piranesi", book.Title)
	assert.Equal(t, "TO_READ", book.Status)
	assert.Nil(t, book.Rating)
	assert.Nil(t, book.FinishedAt)
	assert.Empty(t, book.Tags)
}

func TestCreateBook_AsReadStampsFinishedAt(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{"title": "Mort", "status": "READ"})

	assert.Equal(t, "READ", book.Status)
	require.NotNil(t, book.FinishedAt)
}

func TestCreateBook_NormalizesISBN(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{
		"title": "The Left Hand of Darkness",
		"isbn":  "978-0-441-47812-5",
	})

	require.NotNil(t, book.ISBN)
	assert.Equal(t, "9780441478125", *book.ISBN)
}

func TestCreateBook_UnknownStatus(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.api.Post("/api/v1/books", map[string]any{"title": "Mort", "status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.api.Get("/api/v1/books/book-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateBook_FullReplaceClearsAbsentFields(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{
		"title":  "Mort",
		"author": "Terry Pratchett",
		"rating": 5,
	})

	resp := ts.api.Put("/api/v1/books/"+book.ID, map[string]any{"title": "Mort"})
	require.Equal(t, http.StatusOK, resp.Code)

	var updated BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))

	assert.Nil(t, updated.Author)
	assert.Nil(t, updated.Rating)
}

func TestUpdateBookStatus_Lifecycle(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{"title": "Mort"})

	// Into READ stamps the finish date.
	resp := ts.api.Patch("/api/v1/books/"+book.ID+"/status", map[string]any{"status": "READ"})
	require.Equal(t, http.StatusOK, resp.Code)

	var read BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &read))
	require.NotNil(t, read.FinishedAt)

	// Re-saving READ keeps the original date.
	resp = ts.api.Patch("/api/v1/books/"+book.ID+"/status", map[string]any{"status": "READ"})
	require.Equal(t, http.StatusOK, resp.Code)

	var stillRead BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stillRead))
	require.NotNil(t, stillRead.FinishedAt)
	assert.True(t, read.FinishedAt.Equal(*stillRead.FinishedAt))

	// Leaving READ clears it.
	resp = ts.api.Patch("/api/v1/books/"+book.ID+"/status", map[string]any{"status": "WISHLIST"})
	require.Equal(t, http.StatusOK, resp.Code)

	var wishlisted BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &wishlisted))
	assert.Nil(t, wishlisted.FinishedAt)
}

func TestUpdateBookStatus_Unknown(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{"title": "Mort"})

	resp := ts.api.Patch("/api/v1/books/"+book.ID+"/status", map[string]any{"status": "FINISHED"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{"title": "Mort"})

	resp := ts.api.Delete("/api/v1/books/" + book.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/books/" + book.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListBooks_Filters(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	ts.createBook(t, map[string]any{"title": "Mort", "author": "Terry Pratchett"})
	ts.createBook(t, map[string]any{"title": "Piranesi", "status": "READ"})
	ts.createBook(t, map[string]any{"title": "The Dispossessed", "status": "WISHLIST"})

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListBooksResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)

	resp = ts.api.Get("/api/v1/books?status=READ")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Piranesi", list.Books[0].Title)

	resp = ts.api.Get("/api/v1/books?search=pratchett")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Mort", list.Books[0].Title)
}

func TestListBooks_UnknownSort(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.api.Get("/api/v1/books?sort=title_asc")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCheckDuplicate(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	book := ts.createBook(t, map[string]any{
		"title": "The Left Hand of Darkness",
		"isbn":  "9780441478125",
	})

	// Hyphenated input matches the stored normalized form.
	resp := ts.api.Get("/api/v1/books/duplicate-check?isbn=978-0-441-47812-5")
	require.Equal(t, http.StatusOK, resp.Code)

	var check CheckDuplicateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &check))
	require.NotNil(t, check.Duplicate)
	assert.Equal(t, book.ID, check.Duplicate.ID)

	// Excluding the matching book clears the advisory.
	resp = ts.api.Get("/api/v1/books/duplicate-check?isbn=9780441478125&exclude_id=" + book.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &check))
	assert.Nil(t, check.Duplicate)

	// Junk input is no candidate at all.
	resp = ts.api.Get("/api/v1/books/duplicate-check?isbn=abc")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &check))
	assert.Nil(t, check.Duplicate)
}

func TestCheckDuplicate_DoesNotBlockCreate(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	first := ts.createBook(t, map[string]any{"title": "Copy one", "isbn": "9780441478125"})
	second := ts.createBook(t, map[string]any{"title": "Copy two", "isbn": "9780441478125"})

	assert.NotEqual(t, first.ID, second.ID)
}
