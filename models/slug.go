package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
	"gorm.io/gorm"
)

// Slugify turns a human title (Arabic or otherwise) into a URL-safe slug.
// Unmapped symbols are dropped; an empty result falls back to a
// timestamp-based name so the caller always gets something usable.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, c := range strings.ToLower(unidecode.Unidecode(title)) {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			b.WriteRune(c)
			lastHyphen = false
		case c == ' ' || c == '\t' || c == '\n' || c == '-' || c == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		slug = "album-" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	return slug
}

// GenerateUniqueSlug probes the albums table on tx and appends -1, -2, ...
// until the candidate is free. excludeAlbumID skips the album being
// renamed. Callers run this inside the transaction that persists the row;
// the unique index on albums.slug catches the remaining concurrent-insert
// window.
func GenerateUniqueSlug(tx *gorm.DB, title string, excludeAlbumID uint64) (string, error) {
	base := Slugify(title)
	slug := base
	for suffix := 1; ; suffix++ {
		var count int64
		q := tx.Model(&Album{}).Where("slug = ?", slug)
		if excludeAlbumID != 0 {
			q = q.Where("id <> ?", excludeAlbumID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(suffix)
	}
}
