package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

func TestFindOrCreateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, created, err := s.FindOrCreateTag(ctx, "Space Opera")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if !created {
		t.Error("expected created=true on first call")
	}
	if tag.Name != "Space Opera" {
		t.Errorf("Name: got %q, want %q", tag.Name, "Space Opera")
	}
	if tag.ID == "" {
		t.Error("expected generated ID")
	}

	again, created, err := s.FindOrCreateTag(ctx, "Space Opera")
	if err != nil {
		t.Fatalf("FindOrCreateTag second call: %v", err)
	}
	if created {
		t.Error("expected created=false on second call")
	}
	if again.ID != tag.ID {
		t.Errorf("expected same tag, got %q and %q", again.ID, tag.ID)
	}
}

func TestFindOrCreateTag_CaseInsensitiveIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, _, err := s.FindOrCreateTag(ctx, "Sci-Fi")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}

	second, created, err := s.FindOrCreateTag(ctx, "sci-fi")
	if err != nil {
		t.Fatalf("FindOrCreateTag lowercase: %v", err)
	}
	if created {
		t.Error("expected existing tag for differently-cased name")
	}
	if second.ID != first.ID {
		t.Errorf("expected same tag, got %q and %q", second.ID, first.ID)
	}
	// First writer's casing wins.
	if second.Name != "Sci-Fi" {
		t.Errorf("Name: got %q, want original casing %q", second.Name, "Sci-Fi")
	}
}

func TestGetTagByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, _, err := s.FindOrCreateTag(ctx, "Found Family")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}

	got, err := s.GetTagByName(ctx, "found family")
	if err != nil {
		t.Fatalf("GetTagByName: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID: got %q, want %q", got.ID, created.ID)
	}
}

func TestGetTag_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetTagByID(ctx, "tag-ghost")
	if !errors.Is(err, store.ErrTagNotFound) {
		t.Errorf("GetTagByID: expected ErrTagNotFound, got %v", err)
	}

	_, err = s.GetTagByName(ctx, "ghost")
	if !errors.Is(err, store.ErrTagNotFound) {
		t.Errorf("GetTagByName: expected ErrTagNotFound, got %v", err)
	}
}

func TestAddTagToBook_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("book-tag-1", "Tagged Twice")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	tag, _, err := s.FindOrCreateTag(ctx, "cozy")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}

	if err := s.AddTagToBook(ctx, "book-tag-1", tag.ID); err != nil {
		t.Fatalf("AddTagToBook: %v", err)
	}
	if err := s.AddTagToBook(ctx, "book-tag-1", tag.ID); err != nil {
		t.Fatalf("AddTagToBook repeat: %v", err)
	}

	tags, err := s.GetTagsForBook(ctx, "book-tag-1")
	if err != nil {
		t.Fatalf("GetTagsForBook: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 association, got %d", len(tags))
	}
}

func TestAddTagToBook_MissingBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, _, err := s.FindOrCreateTag(ctx, "orphan")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}

	err = s.AddTagToBook(ctx, "no-such-book", tag.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveTagFromBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("book-untag", "Untag Me")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	tag, _, err := s.FindOrCreateTag(ctx, "temporary")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if err := s.AddTagToBook(ctx, "book-untag", tag.ID); err != nil {
		t.Fatalf("AddTagToBook: %v", err)
	}

	if err := s.RemoveTagFromBook(ctx, "book-untag", tag.ID); err != nil {
		t.Fatalf("RemoveTagFromBook: %v", err)
	}

	tags, err := s.GetTagsForBook(ctx, "book-untag")
	if err != nil {
		t.Fatalf("GetTagsForBook: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected 0 tags, got %d", len(tags))
	}

	// Detaching an absent tag is a no-op.
	if err := s.RemoveTagFromBook(ctx, "book-untag", tag.ID); err != nil {
		t.Errorf("repeat RemoveTagFromBook: %v", err)
	}

	// The tag record itself survives.
	if _, err := s.GetTagByID(ctx, tag.ID); err != nil {
		t.Errorf("tag should survive detach: %v", err)
	}
}

func TestGetTagsForBook_AttachOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("book-order", "Ordered Tags")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		tag, _, err := s.FindOrCreateTag(ctx, name)
		if err != nil {
			t.Fatalf("FindOrCreateTag %s: %v", name, err)
		}
		if err := s.AddTagToBook(ctx, "book-order", tag.ID); err != nil {
			t.Fatalf("AddTagToBook %s: %v", name, err)
		}
	}

	tags, err := s.GetTagsForBook(ctx, "book-order")
	if err != nil {
		t.Fatalf("GetTagsForBook: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}
	for i, name := range names {
		if tags[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, tags[i].Name, name)
		}
	}
}

func TestListAttachedTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("book-attached", "Has Tags")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	attached, _, err := s.FindOrCreateTag(ctx, "Beach Read")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if err := s.AddTagToBook(ctx, "book-attached", attached.ID); err != nil {
		t.Fatalf("AddTagToBook: %v", err)
	}

	// Unattached tags do not appear.
	if _, _, err := s.FindOrCreateTag(ctx, "Unused"); err != nil {
		t.Fatalf("FindOrCreateTag unused: %v", err)
	}

	tags, err := s.ListAttachedTags(ctx)
	if err != nil {
		t.Fatalf("ListAttachedTags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if tags[0].Name != "Beach Read" {
		t.Errorf("Name: got %q, want %q", tags[0].Name, "Beach Read")
	}
}
