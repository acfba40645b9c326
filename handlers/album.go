package handlers

import (
	"net/http"
	"server/models"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AlbumListRequest struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type AlbumSaveRequest struct {
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description *string      `json:"description"`
	MakerNote   *string      `json:"maker_note"`
	Tags        *models.Tags `json:"tags"`
	Status      *string      `json:"status"`
}

type AlbumDetailResponse struct {
	models.Album
	Media []models.Media `json:"media"`
}

func (r *AlbumListRequest) filter() models.AlbumFilter {
	return models.AlbumFilter{
		Category: r.Category,
		Status:   r.Status,
		Search:   r.Search,
		Sort:     r.Sort,
		Page:     r.Page,
		Limit:    r.Limit,
	}
}

// AlbumList is the public listing; only published albums are visible here
func AlbumList(c *gin.Context) {
	r := AlbumListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f := r.filter()
	f.Status = models.StatusPublished
	albums, pagination, err := models.ListAlbums(f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: albums, Pagination: pagination})
}

// AlbumGet returns one published album with its media, counting a view
func AlbumGet(c *gin.Context) {
	album, err := models.GetAlbumBySlug(c.Param("slug"))
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

func AlbumFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	albums, err := models.FeaturedAlbums(limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func AlbumLike(c *gin.Context) {
	album, err := models.LikeAlbum(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes_count": album.LikesCount})
}

func AlbumUnlike(c *gin.Context) {
	album, err := models.UnlikeAlbum(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes_count": album.LikesCount})
}
