package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// initUploadTest wires an in-memory database and a disk bucket in a
// temp dir, returning an album to upload into.
func initUploadTest(t *testing.T) *models.Album {
	t.Helper()
	gin.SetMode(gin.TestMode)
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
	models.Init()
	config.UPLOADS_DIR = t.TempDir()
	storage.Init()

	album, err := models.CreateAlbum(models.AlbumInput{
		Title:    "Wall Hanging",
		Category: models.CategoryMacrame,
	})
	if err != nil {
		t.Fatalf("creating album: %v", err)
	}
	return album
}

func uploadRequest(t *testing.T, albumID uint64, names, alts []string) *http.Request {
	t.Helper()
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	w.WriteField("album_id", strconv.FormatUint(albumID, 10))
	for _, alt := range alts {
		w.WriteField("alt", alt)
	}
	for _, name := range names {
		fw, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("building form: %v", err)
		}
		fw.Write(img.Bytes())
	}
	w.Close()
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// Each alt field pairs with the file at the same position
func TestUploadAppliesPerFileAlt(t *testing.T) {
	album := initUploadTest(t)
	router := gin.New()
	router.POST("/upload", AdminMediaUpload)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, album.ID,
		[]string{"a.png", "b.png", "c.png"},
		[]string{"front view", "knot detail"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	media := []models.Media{}
	if err := json.Unmarshal(rec.Body.Bytes(), &media); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(media) != 3 {
		t.Fatalf("media count = %d, want 3", len(media))
	}
	wantAlts := []string{"front view", "knot detail", ""}
	for i, m := range media {
		if m.Alt != wantAlts[i] {
			t.Errorf("media[%d].alt = %q, want %q", i, m.Alt, wantAlts[i])
		}
	}
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	album := initUploadTest(t)
	router := gin.New()
	router.POST("/upload", AdminMediaUpload)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, album.ID, []string{"a.exe"}, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
