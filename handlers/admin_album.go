package handlers

import (
	"net/http"
	"server/models"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return 0, false
	}
	return id, true
}

// AdminAlbumList reuses the public listing with no forced status filter
func AdminAlbumList(c *gin.Context) {
	r := AlbumListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	albums, pagination, err := models.ListAlbums(r.filter())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: albums, Pagination: pagination})
}

func AdminAlbumGet(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	album, err := models.GetAlbumByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	media, err := models.MediaForAlbum(album.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AlbumDetailResponse{Album: *album, Media: media})
}

func AdminAlbumCreate(c *gin.Context) {
	r := AlbumSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := models.AlbumInput{
		Title:    r.Title,
		Category: r.Category,
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.MakerNote != nil {
		in.MakerNote = *r.MakerNote
	}
	if r.Tags != nil {
		in.Tags = *r.Tags
	}
	if r.Status != nil {
		in.Status = *r.Status
	}
	album, err := models.CreateAlbum(in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func AdminAlbumUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := AlbumSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := models.AlbumUpdate{
		Description: r.Description,
		MakerNote:   r.MakerNote,
		Tags:        r.Tags,
		Status:      r.Status,
	}
	if r.Title != "" {
		update.Title = &r.Title
	}
	if r.Category != "" {
		update.Category = &r.Category
	}
	album, err := models.UpdateAlbum(id, update)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func AdminAlbumDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	album, err := models.DeleteAlbum(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func AdminAlbumStats(c *gin.Context) {
	stats, err := models.GetAlbumStats()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
