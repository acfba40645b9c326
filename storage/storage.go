package storage

import (
	"io"
	"net/http"
	"path/filepath"
	"server/config"
	"server/db"
	"strings"

	"github.com/rs/zerolog/log"
)

type StorageAPI interface {
	// Save stores the reader's content at the bucket-relative path and
	// returns the number of bytes written.
	Save(path string, reader io.Reader) (int64, error)
	// Delete removes the stored file; a missing file is not an error.
	Delete(path string) error
	// Serve streams the file to an HTTP response (disk buckets only).
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	// URLFor derives the publicly reachable URL of a stored path.
	URLFor(path string) string
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 {
		// First boot: set up a disk bucket at the configured uploads dir
		bucket := Bucket{
			Name:        "uploads",
			StorageType: StorageTypeFile,
			Path:        config.UPLOADS_DIR,
			URLPrefix:   config.PUBLIC_BASE_URL + "/uploads",
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	cachedStorage = nil
	for _, bucket := range buckets {
		switch bucket.StorageType {
		case StorageTypeFile:
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		case StorageTypeS3:
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		default:
			log.Fatal().Uint64("bucket", bucket.ID).Msg("storage type unavailable")
		}
	}
	log.Info().Int("buckets", len(cachedStorage)).Msg("storage ready")
}

// Default returns the bucket new uploads go to: the first disk bucket, or
// failing that the first of any type. Nil when Init has not run (tests).
func Default() StorageAPI {
	for _, s := range cachedStorage {
		if !s.GetBucket().IsS3() {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}

// ThumbPath returns where the thumbnail of a stored file lives.
// Thumbnails are always JPEG.
func ThumbPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb.jpg"
}

// DeleteFileAndThumb removes a stored file and its thumbnail, best-effort.
// No configured storage (unit tests) and missing files are both fine.
func DeleteFileAndThumb(path string) {
	s := Default()
	if s == nil || path == "" {
		return
	}
	if err := s.Delete(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("file cleanup failed")
	}
	if err := s.Delete(ThumbPath(path)); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("thumb cleanup failed")
	}
}
