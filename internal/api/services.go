package api

import (
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Book   *service.BookService
	Tag    *service.TagService
	Lookup *service.LookupService
}
