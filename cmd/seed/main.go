// Package main provides a tool to seed the database with a fixture catalog.
//
// This inserts a handful of books across all reading statuses, with tags
// attached, for exercising the API and UI during development.
//
// Usage:
//
//	SHELFMARK_DB_PATH=~/Shelfmark/shelfmark.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/logger"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
	"github.com/shelfmarkapp/shelfmark-server/internal/store/sqlite"
)

type fixture struct {
	title  string
	author string
	status domain.Status
	rating int
	isbn   string
	tags   []string
}

var fixtures = []fixture{
	{
		title:  "The Left Hand of Darkness",
		author: "Ursula K. Le Guin",
		status: domain.StatusRead,
		rating: 5,
		isbn:   "9780441478125",
		tags:   []string{"Sci-Fi", "Hugo Winner"},
	},
	{
		title:  "Mort",
		author: "Terry Pratchett",
		status: domain.StatusRead,
		rating: 4,
		isbn:   "0552131065",
		tags:   []string{"Fantasy", "Comfort Read"},
	},
	{
		title:  "Piranesi",
		author: "Susanna Clarke",
		status: domain.StatusToRead,
		isbn:   "9781635575637",
		tags:   []string{"Fantasy"},
	},
	{
		title:  "The Dispossessed",
		author: "Ursula K. Le Guin",
		status: domain.StatusWishlist,
		isbn:   "9780060512750",
		tags:   []string{"Sci-Fi"},
	},
	{
		title:  "A Memory Called Empire",
		author: "Arkady Martine",
		status: domain.StatusToRead,
		isbn:   "9781250186430",
		tags:   []string{"Sci-Fi", "Space Opera"},
	},
}

func main() {
	dbPath := flag.String("db-path", "", "Path to the catalog database file")
	flag.Parse()

	path := *dbPath
	if path == "" {
		path = os.Getenv("SHELFMARK_DB_PATH")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			stdlog.Fatalf("Failed to resolve home directory: %v", err)
		}
		path = filepath.Join(home, "Shelfmark", "shelfmark.db")
	}

	fmt.Printf("Opening database at: %s\n", path)

	log := logger.New(logger.Config{Level: logger.ParseLevel("warn")})

	st, err := sqlite.Open(path, log.Logger)
	if err != nil {
		stdlog.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	books := service.NewBookService(st, log.Logger)
	tags := service.NewTagService(st, log.Logger)

	ctx := context.Background()

	for _, f := range fixtures {
		input := service.BookInput{
			Title:  f.title,
			Status: f.status,
		}
		if f.author != "" {
			author := f.author
			input.Author = &author
		}
		if f.rating > 0 {
			rating := f.rating
			input.Rating = &rating
		}
		if f.isbn != "" {
			isbn := f.isbn
			input.ISBN = &isbn
		}

		if dup, err := books.CheckDuplicate(ctx, f.isbn, ""); err == nil && dup != nil {
			fmt.Printf("Skipping %q: already in catalog as %s\n", f.title, dup.ID)
			continue
		}

		book, err := books.CreateBook(ctx, input)
		if err != nil {
			stdlog.Fatalf("Failed to create %q: %v", f.title, err)
		}

		for _, name := range f.tags {
			if _, _, err := tags.AttachTag(ctx, book.ID, name); err != nil {
				stdlog.Fatalf("Failed to tag %q with %q: %v", f.title, name, err)
			}
		}

		fmt.Printf("Created %q (%s) with %d tags\n", book.Title, book.Status, len(f.tags))
	}

	total, err := books.CountBooks(ctx)
	if err != nil {
		stdlog.Fatalf("Failed to count books: %v", err)
	}
	fmt.Printf("Catalog now holds %d books\n", total)
}
