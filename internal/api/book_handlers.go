package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns catalog books matching the filters",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Description:   "Adds a book to the catalog",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkDuplicate",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/duplicate-check",
		Summary:     "Check for a duplicate ISBN",
		Description: "Returns the newest catalog book sharing the ISBN, if any. Advisory only.",
		Tags:        []string{"Books"},
	}, s.handleCheckDuplicate)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID with its tags",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces the mutable fields of a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBookStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}/status",
		Summary:     "Update book status",
		Description: "Changes only the reading status of a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBookStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Removes a book and its tag associations",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// === DTOs ===

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Display name with the first writer's casing"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func newTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func newTagResponses(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = newTagResponse(t)
	}
	return resp
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID         string        `json:"id" doc:"Book ID"`
	Title      string        `json:"title" doc:"Title"`
	Author     *string       `json:"author,omitempty" doc:"Author"`
	Status     string        `json:"status" doc:"Reading status" enum:"TO_READ,READ,WISHLIST"`
	Rating     *int          `json:"rating,omitempty" doc:"Rating from 1 to 5"`
	Review     *string       `json:"review,omitempty" doc:"Free-form review"`
	CoverURL   *string       `json:"cover_url,omitempty" doc:"Cover image URL"`
	ISBN       *string       `json:"isbn,omitempty" doc:"Normalized ISBN"`
	FinishedAt *time.Time    `json:"finished_at,omitempty" doc:"When the book entered READ"`
	CreatedAt  time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time     `json:"updated_at" doc:"Last update time"`
	Tags       []TagResponse `json:"tags" doc:"Tags in attach order"`
}

func newBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Status:     string(b.Status),
		Rating:     b.Rating,
		Review:     b.Review,
		CoverURL:   b.CoverURL,
		ISBN:       b.ISBN,
		FinishedAt: b.FinishedAt,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		Tags:       newTagResponses(b.Tags),
	}
}

// ListBooksInput contains filters for listing books.
type ListBooksInput struct {
	Status string `query:"status" doc:"Filter by reading status" required:"false"`
	Search string `query:"search" doc:"Case-insensitive substring over title and author" required:"false"`
	Tag    string `query:"tag" doc:"Filter to books carrying this tag ID" required:"false"`
	Sort   string `query:"sort" doc:"created_desc (default) or rating_desc" required:"false"`
}

// ListBooksResponse contains a page of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Matching books"`
	Total int            `json:"total" doc:"Number of matching books"`
}

// ListBooksOutput wraps the list response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// BookRequest is the request body for creating or replacing a book.
// Absent optional fields are cleared on update.
type BookRequest struct {
	Title    string  `json:"title" doc:"Title" validate:"required,max=512"`
	Author   *string `json:"author,omitempty" doc:"Author" validate:"omitempty,max=512"`
	Status   string  `json:"status,omitempty" doc:"Reading status, defaults to TO_READ" required:"false"`
	Rating   *int    `json:"rating,omitempty" doc:"Rating, clamped into 1..5"`
	Review   *string `json:"review,omitempty" doc:"Free-form review"`
	CoverURL *string `json:"cover_url,omitempty" doc:"Cover image URL" validate:"omitempty,url"`
	ISBN     *string `json:"isbn,omitempty" doc:"ISBN in any punctuation, normalized server-side" validate:"omitempty,max=32"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:    r.Title,
		Author:   r.Author,
		Status:   domain.Status(r.Status),
		Rating:   r.Rating,
		Review:   r.Review,
		CoverURL: r.CoverURL,
		ISBN:     r.ISBN,
	}
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Body BookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps the replace request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// UpdateBookStatusInput wraps the status transition request for Huma.
type UpdateBookStatusInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body struct {
		Status string `json:"status" doc:"New reading status"`
	}
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// CheckDuplicateInput contains parameters for the duplicate advisory.
type CheckDuplicateInput struct {
	ISBN      string `query:"isbn" doc:"Candidate ISBN in any punctuation"`
	ExcludeID string `query:"exclude_id" doc:"Book ID to skip, so an edit never flags itself" required:"false"`
}

// CheckDuplicateResponse reports the newest book sharing the ISBN, or null.
type CheckDuplicateResponse struct {
	Duplicate *BookResponse `json:"duplicate" doc:"Newest matching book, null when none"`
}

// CheckDuplicateOutput wraps the duplicate advisory for Huma.
type CheckDuplicateOutput struct {
	Body CheckDuplicateResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	sort := store.Sort(input.Sort)
	if sort != "" && !sort.Valid() {
		return nil, apperrors.Validationf("unknown sort %q", input.Sort)
	}

	books, err := s.services.Book.ListBooks(ctx, store.BookQuery{
		Status: domain.Status(input.Status),
		Search: input.Search,
		TagID:  input.Tag,
		Sort:   sort,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = newBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp, Total: len(resp)}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, input.ID, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book)}, nil
}

func (s *Server) handleUpdateBookStatus(ctx context.Context, input *UpdateBookStatusInput) (*BookOutput, error) {
	book, err := s.services.Book.UpdateStatus(ctx, input.ID, domain.Status(input.Body.Status))
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

func (s *Server) handleCheckDuplicate(ctx context.Context, input *CheckDuplicateInput) (*CheckDuplicateOutput, error) {
	dup, err := s.services.Book.CheckDuplicate(ctx, input.ISBN, input.ExcludeID)
	if err != nil {
		return nil, err
	}

	var resp CheckDuplicateResponse
	if dup != nil {
		body := newBookResponse(dup)
		resp.Duplicate = &body
	}
	return &CheckDuplicateOutput{Body: resp}, nil
}
