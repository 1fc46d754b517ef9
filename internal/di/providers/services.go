package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-server/internal/logger"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/googlebooks"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/openlibrary"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
)

// ProvideBookService provides the catalog book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideTagService provides the tag association service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideLookupService provides the bibliographic resolver.
func ProvideLookupService(i do.Injector) (*service.LookupService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	openLibrary := do.MustInvoke[*openlibrary.Client](i)
	googleBooks := do.MustInvoke[*googlebooks.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLookupService(storeHandle.Store, openLibrary, googleBooks, log.Logger), nil
}
