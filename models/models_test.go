package models

import (
	"server/db"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// initTestDB points db.Instance at a fresh in-memory SQLite database.
// Single connection, otherwise every pooled connection gets its own
// empty :memory: database.
func initTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("getting raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db.Instance = gdb
	Init()
}

func createTestAlbum(t *testing.T, title string) *Album {
	t.Helper()
	album, err := CreateAlbum(AlbumInput{
		Title:    title,
		Category: CategoryMacrame,
		Status:   StatusPublished,
	})
	if err != nil {
		t.Fatalf("creating album %q: %v", title, err)
	}
	return album
}

func addTestMedia(t *testing.T, albumID uint64, count int) []Media {
	t.Helper()
	items := make([]MediaInput, count)
	for i := range items {
		items[i] = MediaInput{
			URL:  "/uploads/test/" + string(rune('a'+i)) + ".jpg",
			Path: "test/" + string(rune('a'+i)) + ".jpg",
		}
	}
	media, err := AddMedia(albumID, items, false)
	if err != nil {
		t.Fatalf("adding media: %v", err)
	}
	return media
}

// assertSingleCover checks the single-cover invariant and that the
// album's cover_image tracks the flagged cover (or is null with no media).
func assertSingleCover(t *testing.T, albumID uint64) {
	t.Helper()
	media, err := MediaForAlbum(albumID)
	if err != nil {
		t.Fatalf("listing media: %v", err)
	}
	album, err := GetAlbumByID(albumID)
	if err != nil {
		t.Fatalf("loading album: %v", err)
	}
	var cover *Media
	covers := 0
	for i := range media {
		if media[i].IsCover {
			covers++
			cover = &media[i]
		}
	}
	if covers > 1 {
		t.Fatalf("album %d has %d cover media", albumID, covers)
	}
	if len(media) == 0 {
		if album.CoverImage != nil {
			t.Fatalf("album %d has no media but cover_image = %q", albumID, *album.CoverImage)
		}
		return
	}
	if cover == nil {
		return // fallback cover is a query-time concern
	}
	if album.CoverImage == nil || *album.CoverImage != cover.URL {
		t.Fatalf("album %d cover_image = %v, want %q", albumID, album.CoverImage, cover.URL)
	}
}
