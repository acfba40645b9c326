package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"server/db"
	"server/storage"

	"gorm.io/gorm"
)

const (
	CategoryMacrame = "macrame"
	CategoryFrame   = "frame"

	StatusDraft     = "draft"
	StatusPublished = "published"

	maxTitleLength = 255
	maxTextLength  = 5000
)

// Tags is stored as a JSON array in a text column.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal(t)
	return string(b), err
}

func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("unsupported tags column type %T", value)
}

type Album struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Slug        string  `gorm:"type:varchar(300);uniqueIndex" json:"slug"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Category    string  `gorm:"type:varchar(20);index" json:"category"`
	Description string  `gorm:"type:text" json:"description"`
	MakerNote   string  `gorm:"type:text" json:"maker_note"`
	Tags        Tags    `gorm:"type:text" json:"tags"`
	Status      string  `gorm:"type:varchar(20);index;default:draft" json:"status"`
	CoverImage  *string `gorm:"type:varchar(2000)" json:"cover_image"`
	ViewCount   uint64  `gorm:"not null;default:0" json:"view_count"`
	LikesCount  uint64  `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`

	// CoverMedia is filled by listing/featured queries: the flagged cover,
	// or the lowest sort_order media when no cover is flagged.
	CoverMedia *Media `gorm:"-" json:"cover_media,omitempty"`
}

type AlbumInput struct {
	Title       string
	Category    string
	Description string
	MakerNote   string
	Tags        Tags
	Status      string
}

// AlbumUpdate carries partial changes; nil fields are left untouched.
type AlbumUpdate struct {
	Title       *string
	Category    *string
	Description *string
	MakerNote   *string
	Tags        *Tags
	Status      *string
}

type AlbumFilter struct {
	Category string
	Status   string
	Search   string
	Sort     string // newest (default) | title | views
	Page     int
	Limit    int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type AlbumStats struct {
	Total      int64            `json:"total"`
	Published  int64            `json:"published"`
	ByCategory map[string]int64 `json:"by_category"`
}

func validCategory(c string) bool {
	return c == CategoryMacrame || c == CategoryFrame
}

func validStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}

func (in *AlbumInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(in.Title) > maxTitleLength {
		return fmt.Errorf("%w: title longer than %d bytes", ErrValidation, maxTitleLength)
	}
	if !validCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}
	if !validStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if len(in.Description) > maxTextLength || len(in.MakerNote) > maxTextLength {
		return fmt.Errorf("%w: text field longer than %d bytes", ErrValidation, maxTextLength)
	}
	return nil
}

// CreateAlbum inserts a new album with a freshly generated unique slug.
// Slug probing and the insert share one transaction.
func CreateAlbum(in AlbumInput) (*Album, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	album := Album{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		MakerNote:   in.MakerNote,
		Tags:        in.Tags,
		Status:      in.Status,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		slug, err := GenerateUniqueSlug(tx, in.Title, 0)
		if err != nil {
			return err
		}
		album.Slug = slug
		return tx.Create(&album).Error
	})
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// UpdateAlbum applies the provided fields. The slug is recomputed only
// when the title actually changes.
func UpdateAlbum(id uint64, in AlbumUpdate) (*Album, error) {
	var album Album
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&album, id).Error; err != nil {
			return wrapRecordError(err)
		}
		if in.Title != nil && *in.Title != album.Title {
			if *in.Title == "" {
				return fmt.Errorf("%w: title is required", ErrValidation)
			}
			if len(*in.Title) > maxTitleLength {
				return fmt.Errorf("%w: title longer than %d bytes", ErrValidation, maxTitleLength)
			}
			slug, err := GenerateUniqueSlug(tx, *in.Title, album.ID)
			if err != nil {
				return err
			}
			album.Title = *in.Title
			album.Slug = slug
		}
		if in.Category != nil {
			if !validCategory(*in.Category) {
				return fmt.Errorf("%w: unknown category %q", ErrValidation, *in.Category)
			}
			album.Category = *in.Category
		}
		if in.Status != nil {
			if !validStatus(*in.Status) {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
			}
			album.Status = *in.Status
		}
		if in.Description != nil {
			if len(*in.Description) > maxTextLength {
				return fmt.Errorf("%w: description longer than %d bytes", ErrValidation, maxTextLength)
			}
			album.Description = *in.Description
		}
		if in.MakerNote != nil {
			if len(*in.MakerNote) > maxTextLength {
				return fmt.Errorf("%w: maker note longer than %d bytes", ErrValidation, maxTextLength)
			}
			album.MakerNote = *in.MakerNote
		}
		if in.Tags != nil {
			album.Tags = *in.Tags
		}
		return tx.Save(&album).Error
	})
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// DeleteAlbum removes the album and all of its media rows in one
// transaction, then removes the backing files best-effort. Returns the
// pre-delete snapshot.
func DeleteAlbum(id uint64) (*Album, error) {
	var album Album
	var media []Media
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&album, id).Error; err != nil {
			return wrapRecordError(err)
		}
		if err := tx.Where("album_id = ?", id).Find(&media).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", id).Delete(&Media{}).Error; err != nil {
			return err
		}
		return tx.Delete(&album).Error
	})
	if err != nil {
		return nil, err
	}
	for _, m := range media {
		storage.DeleteFileAndThumb(m.Path)
	}
	return &album, nil
}

func GetAlbumByID(id uint64) (*Album, error) {
	var album Album
	if err := db.Instance.First(&album, id).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	return &album, nil
}

// GetAlbumBySlug loads a published album and counts the fetch as a view.
// Drafts are filtered in the WHERE clause so probing their slugs neither
// confirms existence nor inflates the counter. The counter bump is a
// column expression so concurrent fetches never lose updates; it
// deliberately does not touch updated_at.
func GetAlbumBySlug(slug string) (*Album, error) {
	var album Album
	err := db.Instance.Where("slug = ? AND status = ?", slug, StatusPublished).
		First(&album).Error
	if err != nil {
		return nil, wrapRecordError(err)
	}
	err = db.Instance.Model(&album).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return nil, err
	}
	album.ViewCount++
	return &album, nil
}

// LikeAlbum bumps the like counter of a published-or-not album by slug.
func LikeAlbum(slug string) (*Album, error) {
	return adjustLikes(slug, "likes_count + 1", "")
}

// UnlikeAlbum decrements the like counter, floored at zero. The floor is
// enforced in the WHERE clause so concurrent unlikes cannot wrap around.
func UnlikeAlbum(slug string) (*Album, error) {
	return adjustLikes(slug, "likes_count - 1", "likes_count > 0")
}

func adjustLikes(slug, expr, guard string) (*Album, error) {
	var album Album
	if err := db.Instance.Where("slug = ?", slug).First(&album).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	q := db.Instance.Model(&Album{}).Where("id = ?", album.ID)
	if guard != "" {
		q = q.Where(guard)
	}
	if err := q.UpdateColumn("likes_count", gorm.Expr(expr)).Error; err != nil {
		return nil, err
	}
	if err := db.Instance.First(&album, album.ID).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	return &album, nil
}

// ListAlbums returns a page of albums matching the filter. Public callers
// pass Status=StatusPublished; the admin listing reuses this with no
// status filter.
func ListAlbums(f AlbumFilter) ([]Album, Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	q := db.Instance.Model(&Album{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	switch f.Sort {
	case "title":
		q = q.Order("title ASC")
	case "views":
		q = q.Order("view_count DESC, created_at DESC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}
	albums := []Album{}
	err := q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&albums).Error
	if err != nil {
		return nil, Pagination{}, err
	}
	pagination := Pagination{
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
		Pages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}
	return albums, pagination, nil
}

// FeaturedAlbums returns the most viewed published albums, each annotated
// with its display cover.
func FeaturedAlbums(limit int) ([]Album, error) {
	if limit < 1 {
		limit = 6
	}
	albums := []Album{}
	err := db.Instance.
		Where("status = ?", StatusPublished).
		Order("view_count DESC, created_at DESC").
		Limit(limit).
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	for i := range albums {
		cover, err := displayCover(db.Instance, albums[i].ID)
		if err != nil {
			return nil, err
		}
		albums[i].CoverMedia = cover
	}
	return albums, nil
}

// displayCover picks the flagged cover, falling back to the first media in
// display order. Returns nil when the album has no media.
func displayCover(tx *gorm.DB, albumID uint64) (*Media, error) {
	var media Media
	err := tx.Where("album_id = ? AND is_cover = ?", albumID, true).
		Order("sort_order ASC, id ASC").First(&media).Error
	if err == nil {
		return &media, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = tx.Where("album_id = ?", albumID).
		Order("sort_order ASC, id ASC").First(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func GetAlbumStats() (AlbumStats, error) {
	stats := AlbumStats{ByCategory: map[string]int64{}}
	if err := db.Instance.Model(&Album{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	err := db.Instance.Model(&Album{}).
		Where("status = ?", StatusPublished).
		Count(&stats.Published).Error
	if err != nil {
		return stats, err
	}
	rows, err := db.Instance.Model(&Album{}).
		Select("category, count(*)").Group("category").Rows()
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int64
		if err = rows.Scan(&category, &count); err != nil {
			return stats, err
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}
