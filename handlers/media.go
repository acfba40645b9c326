package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"server/config"
	"server/models"
	"server/storage"
	"server/utils"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type MediaUpdateRequest struct {
	Alt       *string `json:"alt"`
	IsCover   *bool   `json:"is_cover"`
	SortOrder *int    `json:"sort_order"`
}

type MediaReorderRequest struct {
	MediaIDs []uint64 `json:"media_ids" binding:"required"`
}

type MediaBatchDeleteRequest struct {
	MediaIDs []uint64 `json:"media_ids" binding:"required"`
}

// AdminMediaUpload attaches one or more images to an album in one call.
// Files land in the default bucket under albums/<id>/ with uuid names; a
// JPEG thumb is generated alongside each. Cover policy is handled by
// models.AddMedia.
func AdminMediaUpload(c *gin.Context) {
	albumID, err := strconv.ParseUint(c.PostForm("album_id"), 10, 64)
	if err != nil || albumID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad album_id"})
		return
	}
	noCover := c.PostForm("no_cover") == "true"
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images attached"})
		return
	}
	// Repeated alt fields pair up with the files positionally; files
	// beyond the last alt get an empty one
	alts := form.Value["alt"]
	bucket := storage.Default()
	items := make([]models.MediaInput, 0, len(files))
	saved := []string{}
	for i, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type " + ext})
			return
		}
		if file.Size > int64(config.MAX_UPLOAD_MB)*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": file.Filename + " is too large"})
			return
		}
		path := "albums/" + strconv.FormatUint(albumID, 10) + "/" + uuid.NewString() + ext
		reader, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_, err = bucket.Save(path, reader)
		reader.Close()
		if err != nil {
			for _, p := range saved {
				storage.DeleteFileAndThumb(p)
			}
			abortWithError(c, err)
			return
		}
		saved = append(saved, path)
		createThumb(bucket, file, path)
		alt := ""
		if i < len(alts) {
			alt = alts[i]
		}
		items = append(items, models.MediaInput{
			URL:  bucket.URLFor(path),
			Path: path,
			Alt:  alt,
		})
	}
	media, err := models.AddMedia(albumID, items, noCover)
	if err != nil {
		// The rows never landed; don't leave the files behind
		for _, path := range saved {
			storage.DeleteFileAndThumb(path)
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// createThumb is best-effort: an undecodable image (e.g. webp) simply has
// no thumbnail and the full image is served instead.
func createThumb(bucket storage.StorageAPI, file *multipart.FileHeader, path string) {
	reader, err := file.Open()
	if err != nil {
		return
	}
	defer reader.Close()
	var buf bytes.Buffer
	if _, err := utils.CreateThumb(uint(config.THUMB_SIZE), reader, &buf); err != nil {
		return
	}
	if _, err := bucket.Save(storage.ThumbPath(path), &buf); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("thumb save failed")
	}
}

func AdminMediaUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := MediaUpdateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	media, err := models.UpdateMedia(id, models.MediaUpdate{
		Alt:       r.Alt,
		IsCover:   r.IsCover,
		SortOrder: r.SortOrder,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func AdminMediaReorder(c *gin.Context) {
	albumID, ok := paramID(c)
	if !ok {
		return
	}
	r := MediaReorderRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	media, err := models.ReorderMedia(albumID, r.MediaIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func AdminMediaDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	media, err := models.DeleteMedia(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func AdminMediaBatchDelete(c *gin.Context) {
	r := MediaBatchDeleteRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deleted, err := models.DeleteMediaBatch(r.MediaIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func AdminMediaList(c *gin.Context) {
	albumID, ok := paramID(c)
	if !ok {
		return
	}
	if _, err := models.GetAlbumByID(albumID); err != nil {
		abortWithError(c, err)
		return
	}
	media, err := models.MediaForAlbum(albumID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}
