package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns every tag attached to at least one book, alphabetical",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/tags",
		Summary:     "Get book tags",
		Description: "Returns a book's tags in attach order",
		Tags:        []string{"Tags"},
	}, s.handleGetBookTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "attachTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/tags",
		Summary:     "Attach tag",
		Description: "Attaches a tag by name, creating it on first use. Idempotent.",
		Tags:        []string{"Tags"},
	}, s.handleAttachTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "detachTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}/tags/{tagId}",
		Summary:     "Detach tag",
		Description: "Removes a tag from a book. The tag itself survives. Idempotent.",
		Tags:        []string{"Tags"},
	}, s.handleDetachTag)
}

// === DTOs ===

// ListTagsResponse contains the catalog's attached tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags attached to at least one book"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// GetBookTagsInput contains parameters for listing a book's tags.
type GetBookTagsInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookTagsResponse contains a book's tags.
type BookTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags in attach order"`
}

// BookTagsOutput wraps the book tags response for Huma.
type BookTagsOutput struct {
	Body BookTagsResponse
}

// AttachTagInput wraps the attach request for Huma.
type AttachTagInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body struct {
		Name string `json:"name" doc:"Tag name in any casing and spacing"`
	}
}

// AttachTagResponse reports the attached tag.
type AttachTagResponse struct {
	Tag     TagResponse `json:"tag" doc:"The attached tag"`
	Created bool        `json:"created" doc:"Whether the tag was newly created"`
}

// AttachTagOutput wraps the attach response for Huma.
type AttachTagOutput struct {
	Body AttachTagResponse
}

// DetachTagInput contains parameters for detaching a tag.
type DetachTagInput struct {
	ID    string `path:"id" doc:"Book ID"`
	TagID string `path:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: newTagResponses(tags)}}, nil
}

func (s *Server) handleGetBookTags(ctx context.Context, input *GetBookTagsInput) (*BookTagsOutput, error) {
	tags, err := s.services.Tag.GetTagsForBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookTagsOutput{Body: BookTagsResponse{Tags: newTagResponses(tags)}}, nil
}

func (s *Server) handleAttachTag(ctx context.Context, input *AttachTagInput) (*AttachTagOutput, error) {
	tag, created, err := s.services.Tag.AttachTag(ctx, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &AttachTagOutput{Body: AttachTagResponse{Tag: newTagResponse(tag), Created: created}}, nil
}

func (s *Server) handleDetachTag(ctx context.Context, input *DetachTagInput) (*MessageOutput, error) {
	if err := s.services.Tag.DetachTag(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Tag detached"}}, nil
}
