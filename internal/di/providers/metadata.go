package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-server/internal/config"
	"github.com/shelfmarkapp/shelfmark-server/internal/logger"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/googlebooks"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/openlibrary"
)

// ProvideOpenLibraryClient provides the primary bibliographic source.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return openlibrary.NewClient(cfg.Lookup.Timeout, log.Logger), nil
}

// ProvideGoogleBooksClient provides the fallback bibliographic source.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(cfg.Lookup.GoogleBooksAPIKey, cfg.Lookup.Timeout, log.Logger)
	if !client.HasKey() {
		log.Warn("Google Books API key not configured; ISBN lookups will have no fallback source")
	}

	return client, nil
}
