package models

import (
	"database/sql"
	"errors"
	"fmt"
	"server/db"
	"server/storage"

	"gorm.io/gorm"
)

type Media struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	AlbumID uint64 `gorm:"not null;index:album_sort,priority:1" json:"album_id"`
	Album   Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	URL     string `gorm:"type:varchar(2000)" json:"url"`
	// Path is the bucket-relative location of the stored file; the URL is
	// derived from it once at creation and never re-parsed.
	Path      string `gorm:"type:varchar(500)" json:"-"`
	Alt       string `gorm:"type:varchar(500)" json:"alt"`
	IsCover   bool   `gorm:"not null;default:false" json:"is_cover"`
	SortOrder int    `gorm:"not null;default:0;index:album_sort,priority:2" json:"sort_order"`
	CreatedAt int64  `json:"created_at"`
}

type MediaInput struct {
	URL  string
	Path string
	Alt  string
}

// MediaUpdate carries partial changes; nil fields are left untouched.
type MediaUpdate struct {
	Alt       *string
	IsCover   *bool
	SortOrder *int
}

// MediaForAlbum lists an album's media in display order. The id tiebreak
// keeps the order deterministic when sort_order values collide.
func MediaForAlbum(albumID uint64) ([]Media, error) {
	media := []Media{}
	err := db.Instance.Where("album_id = ?", albumID).
		Order("sort_order ASC, id ASC").Find(&media).Error
	return media, err
}

// AddMedia appends a batch of items after the album's current highest
// sort_order. Unless noCover is set, the first item of the batch becomes
// the cover when the album has no flagged cover yet.
func AddMedia(albumID uint64, items []MediaInput, noCover bool) ([]Media, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no media items given", ErrValidation)
	}
	media := make([]Media, 0, len(items))
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var album Album
		if err := tx.First(&album, albumID).Error; err != nil {
			return wrapRecordError(err)
		}
		var maxSort sql.NullInt64
		err := tx.Model(&Media{}).Where("album_id = ?", albumID).
			Select("max(sort_order)").Scan(&maxSort).Error
		if err != nil {
			return err
		}
		next := 0
		if maxSort.Valid {
			next = int(maxSort.Int64) + 1
		}
		for i, item := range items {
			m := Media{
				AlbumID:   albumID,
				URL:       item.URL,
				Path:      item.Path,
				Alt:       item.Alt,
				SortOrder: next + i,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			media = append(media, m)
		}
		if noCover {
			return nil
		}
		var covers int64
		err = tx.Model(&Media{}).
			Where("album_id = ? AND is_cover = ?", albumID, true).
			Count(&covers).Error
		if err != nil {
			return err
		}
		if covers > 0 {
			return nil
		}
		return setCover(tx, &media[0])
	})
	if err != nil {
		return nil, err
	}
	return media, nil
}

// setCover makes m the album's only flagged cover and syncs the
// denormalized cover_image on the album row.
func setCover(tx *gorm.DB, m *Media) error {
	err := tx.Model(&Media{}).
		Where("album_id = ? AND id <> ?", m.AlbumID, m.ID).
		UpdateColumn("is_cover", false).Error
	if err != nil {
		return err
	}
	m.IsCover = true
	if err = tx.Model(m).UpdateColumn("is_cover", true).Error; err != nil {
		return err
	}
	return tx.Model(&Album{}).Where("id = ?", m.AlbumID).
		Update("cover_image", m.URL).Error
}

// demoteCover unflags m and promotes the first remaining media in display
// order, or clears the album's cover_image when m was the last one.
func demoteCover(tx *gorm.DB, m *Media) error {
	m.IsCover = false
	if err := tx.Model(m).UpdateColumn("is_cover", false).Error; err != nil {
		return err
	}
	// Should not exist under the invariant, but check before promoting
	var other Media
	err := tx.Where("album_id = ? AND is_cover = ? AND id <> ?", m.AlbumID, true, m.ID).
		Order("sort_order ASC, id ASC").First(&other).Error
	if err == nil {
		return tx.Model(&Album{}).Where("id = ?", m.AlbumID).
			Update("cover_image", other.URL).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	err = tx.Where("album_id = ? AND id <> ?", m.AlbumID, m.ID).
		Order("sort_order ASC, id ASC").First(&other).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Model(&Album{}).Where("id = ?", m.AlbumID).
			Update("cover_image", nil).Error
	}
	if err != nil {
		return err
	}
	return setCover(tx, &other)
}

// UpdateMedia changes alt text, position and/or cover status.
func UpdateMedia(id uint64, in MediaUpdate) (*Media, error) {
	var media Media
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&media, id).Error; err != nil {
			return wrapRecordError(err)
		}
		if in.Alt != nil {
			media.Alt = *in.Alt
			if err := tx.Model(&media).UpdateColumn("alt", *in.Alt).Error; err != nil {
				return err
			}
		}
		if in.SortOrder != nil {
			media.SortOrder = *in.SortOrder
			if err := tx.Model(&media).UpdateColumn("sort_order", *in.SortOrder).Error; err != nil {
				return err
			}
		}
		if in.IsCover != nil && *in.IsCover != media.IsCover {
			if *in.IsCover {
				return setCover(tx, &media)
			}
			return demoteCover(tx, &media)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// ReorderMedia rewrites sort_order to 0..n-1 following the given id order.
// Ids outside the album are skipped; the whole rewrite is atomic so a
// partial reorder is never visible.
func ReorderMedia(albumID uint64, ids []uint64) ([]Media, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no media ids given", ErrValidation)
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var album Album
		if err := tx.First(&album, albumID).Error; err != nil {
			return wrapRecordError(err)
		}
		for position, id := range ids {
			err := tx.Model(&Media{}).
				Where("id = ? AND album_id = ?", id, albumID).
				UpdateColumn("sort_order", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return MediaForAlbum(albumID)
}

// DeleteMedia removes one media row, reassigning the cover when the
// deleted row held it. The backing file is removed after commit,
// best-effort.
func DeleteMedia(id uint64) (*Media, error) {
	var media Media
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&media, id).Error; err != nil {
			return wrapRecordError(err)
		}
		if media.IsCover {
			if err := demoteCover(tx, &media); err != nil {
				return err
			}
		}
		return tx.Delete(&Media{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	storage.DeleteFileAndThumb(media.Path)
	return &media, nil
}

// DeleteMediaBatch deletes each id with DeleteMedia semantics. Already
// deleted ids are skipped, not errors. Returns how many rows were removed.
func DeleteMediaBatch(ids []uint64) (int, error) {
	deleted := 0
	for _, id := range ids {
		_, err := DeleteMedia(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
