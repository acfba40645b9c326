package models

import (
	"errors"
	"testing"
)

func TestCreateAlbumValidation(t *testing.T) {
	initTestDB(t)
	tests := []struct {
		name string
		in   AlbumInput
	}{
		{"missing title", AlbumInput{Category: CategoryMacrame}},
		{"bad category", AlbumInput{Title: "x", Category: "pottery"}},
		{"bad status", AlbumInput{Title: "x", Category: CategoryFrame, Status: "archived"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateAlbum(tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("CreateAlbum() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateAlbumDefaultsToDraft(t *testing.T) {
	initTestDB(t)
	album, err := CreateAlbum(AlbumInput{Title: "Quiet Piece", Category: CategoryFrame})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if album.Status != StatusDraft {
		t.Errorf("status = %q, want draft", album.Status)
	}
}

// Title-preserving updates must never touch the slug
func TestUpdateAlbumSlugStability(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	desc := "hand-knotted"
	updated, err := UpdateAlbum(album.ID, AlbumUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateAlbum: %v", err)
	}
	if updated.Slug != album.Slug {
		t.Errorf("slug changed %q -> %q on description-only update", album.Slug, updated.Slug)
	}
	if updated.Description != desc {
		t.Errorf("description = %q, want %q", updated.Description, desc)
	}
}

func TestUpdateAlbumTitleRecomputesSlug(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	createTestAlbum(t, "Sun Flower") // occupies sun-flower
	title := "Sun Flower"
	updated, err := UpdateAlbum(album.ID, AlbumUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateAlbum: %v", err)
	}
	if updated.Slug != "sun-flower-1" {
		t.Errorf("slug = %q, want sun-flower-1", updated.Slug)
	}
}

func TestUpdateAlbumNotFound(t *testing.T) {
	initTestDB(t)
	title := "x"
	if _, err := UpdateAlbum(12345, AlbumUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateAlbum(missing) error = %v, want ErrNotFound", err)
	}
}

// Every detail fetch counts as a view, with no deduplication
func TestViewCounting(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	for i := 0; i < 5; i++ {
		if _, err := GetAlbumBySlug(album.Slug); err != nil {
			t.Fatalf("GetAlbumBySlug: %v", err)
		}
	}
	got, err := GetAlbumByID(album.ID)
	if err != nil {
		t.Fatalf("GetAlbumByID: %v", err)
	}
	if got.ViewCount != 5 {
		t.Errorf("view_count = %d, want 5", got.ViewCount)
	}
}

// Probing a draft's slug must look like a missing album and leave its
// view counter alone
func TestDraftSlugNotFetchableBySlug(t *testing.T) {
	initTestDB(t)
	draft, err := CreateAlbum(AlbumInput{
		Title:    "Work In Progress",
		Category: CategoryMacrame,
		Status:   StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if _, err := GetAlbumBySlug(draft.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAlbumBySlug(draft) error = %v, want ErrNotFound", err)
	}
	got, err := GetAlbumByID(draft.ID)
	if err != nil {
		t.Fatalf("GetAlbumByID: %v", err)
	}
	if got.ViewCount != 0 {
		t.Errorf("draft view_count = %d, want 0", got.ViewCount)
	}
}

func TestLikesFlooredAtZero(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	if _, err := LikeAlbum(album.Slug); err != nil {
		t.Fatalf("LikeAlbum: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := UnlikeAlbum(album.Slug); err != nil {
			t.Fatalf("UnlikeAlbum: %v", err)
		}
	}
	got, _ := GetAlbumByID(album.ID)
	if got.LikesCount != 0 {
		t.Errorf("likes_count = %d, want 0", got.LikesCount)
	}
}

func TestDeleteAlbumCascades(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	addTestMedia(t, album.ID, 3)

	if _, err := DeleteAlbum(album.ID); err != nil {
		t.Fatalf("DeleteAlbum: %v", err)
	}
	media, err := MediaForAlbum(album.ID)
	if err != nil {
		t.Fatalf("MediaForAlbum: %v", err)
	}
	if len(media) != 0 {
		t.Errorf("media rows remaining after delete: %d", len(media))
	}
	if _, err := GetAlbumByID(album.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAlbumByID after delete error = %v, want ErrNotFound", err)
	}
	if _, err := GetAlbumBySlug(album.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAlbumBySlug after delete error = %v, want ErrNotFound", err)
	}
}

func TestListAlbumsFiltersAndPagination(t *testing.T) {
	initTestDB(t)
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		createTestAlbum(t, title)
	}
	draft, err := CreateAlbum(AlbumInput{Title: "Hidden", Category: CategoryFrame})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	albums, pagination, err := ListAlbums(AlbumFilter{Status: StatusPublished, Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListAlbums: %v", err)
	}
	if pagination.Total != 3 || pagination.Pages != 2 {
		t.Errorf("pagination = %+v, want total 3 pages 2", pagination)
	}
	if len(albums) != 2 {
		t.Errorf("page size = %d, want 2", len(albums))
	}
	for _, a := range albums {
		if a.ID == draft.ID {
			t.Error("draft album leaked into published listing")
		}
	}

	albums, _, err = ListAlbums(AlbumFilter{Search: "amm"})
	if err != nil {
		t.Fatalf("ListAlbums(search): %v", err)
	}
	if len(albums) != 1 || albums[0].Title != "Gamma" {
		t.Errorf("search result = %+v, want [Gamma]", albums)
	}

	albums, _, err = ListAlbums(AlbumFilter{Sort: "title", Status: StatusPublished})
	if err != nil {
		t.Fatalf("ListAlbums(title sort): %v", err)
	}
	if albums[0].Title != "Alpha" || albums[2].Title != "Gamma" {
		t.Error("title sort out of order")
	}
}

func TestFeaturedAlbumsAnnotatesCover(t *testing.T) {
	initTestDB(t)
	album := createTestAlbum(t, "Moon Flower")
	media := addTestMedia(t, album.ID, 2)
	empty := createTestAlbum(t, "Empty Album")

	// Make the media album clearly more viewed
	for i := 0; i < 3; i++ {
		GetAlbumBySlug(album.Slug)
	}
	featured, err := FeaturedAlbums(10)
	if err != nil {
		t.Fatalf("FeaturedAlbums: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("featured count = %d, want 2", len(featured))
	}
	if featured[0].ID != album.ID {
		t.Errorf("featured[0] = %d, want most-viewed album %d", featured[0].ID, album.ID)
	}
	if featured[0].CoverMedia == nil || featured[0].CoverMedia.ID != media[0].ID {
		t.Error("featured album missing cover media annotation")
	}
	for _, f := range featured {
		if f.ID == empty.ID && f.CoverMedia != nil {
			t.Error("empty album should have no cover media")
		}
	}
}

func TestAlbumStatsCounts(t *testing.T) {
	initTestDB(t)
	createTestAlbum(t, "A")
	createTestAlbum(t, "B")
	CreateAlbum(AlbumInput{Title: "C", Category: CategoryFrame})

	stats, err := GetAlbumStats()
	if err != nil {
		t.Fatalf("GetAlbumStats: %v", err)
	}
	if stats.Total != 3 || stats.Published != 2 {
		t.Errorf("stats = %+v, want total 3 published 2", stats)
	}
	if stats.ByCategory[CategoryMacrame] != 2 || stats.ByCategory[CategoryFrame] != 1 {
		t.Errorf("by_category = %v", stats.ByCategory)
	}
}
