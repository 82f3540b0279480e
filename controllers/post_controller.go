package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

type PostController struct {
	DB    *gorm.DB
	Media *services.MediaService
}

func NewPostController(db *gorm.DB, media *services.MediaService) *PostController {
	return &PostController{DB: db, Media: media}
}

func (pc *PostController) formatPost(c *gin.Context, post *models.Post) (gin.H, error) {
	gallery, err := pc.Media.GalleryMedia(c.Request.Context(), services.PostGallery, post.ID)
	if err != nil {
		return nil, err
	}
	images := make([]services.MediaPayload, 0, len(gallery))
	for i := range gallery {
		images = append(images, services.FormatMedia(&gallery[i]))
	}

	return gin.H{
		"id":            post.ID,
		"name":          post.Name,
		"description":   post.Description,
		"content":       post.Content,
		"exhibition_id": post.ExhibitionID,
		"audio":         services.FormatMedia(post.Audio),
		"images":        images,
	}, nil
}

func (pc *PostController) Index(c *gin.Context) {
	query := pc.DB.Preload("Audio")
	if v := c.Query("exhibition_id"); v != "" {
		query = query.Where("exhibition_id = ?", v)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(posts))
	for i := range posts {
		formatted, err := pc.formatPost(c, &posts[i])
		if err != nil {
			respondError(c, err)
			return
		}
		data = append(data, formatted)
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

func (pc *PostController) Show(c *gin.Context) {
	var post models.Post
	if err := pc.DB.Preload("Audio").First(&post, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	formatted, err := pc.formatPost(c, &post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: formatted})
}

// PublicIndex lists an exhibition's posts for visitors: the full per-language
// maps plus resolved audio and image URLs, no authentication. Unknown ids
// yield an empty list.
func (pc *PostController) PublicIndex(c *gin.Context) {
	var posts []models.Post
	if err := pc.DB.Preload("Audio").
		Where("exhibition_id = ?", c.Param("exhibitionId")).
		Find(&posts).Error; err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(posts))
	for i := range posts {
		formatted, err := pc.formatPost(c, &posts[i])
		if err != nil {
			respondError(c, err)
			return
		}
		formatted["museum_id"] = c.Param("museumId")
		data = append(data, formatted)
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

// PublicShow returns one post for visitors.
func (pc *PostController) PublicShow(c *gin.Context) {
	var post models.Post
	if err := pc.DB.Preload("Audio").First(&post, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	formatted, err := pc.formatPost(c, &post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: formatted})
}

func parseExhibitionID(c *gin.Context, form map[string][]string) (*uint, bool) {
	vals, ok := form["exhibition_id"]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(vals[0], 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exhibition_id must be numeric", "success": false})
		return nil, false
	}
	u := uint(id)
	return &u, true
}

func (pc *PostController) Store(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(pc.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	name := formLangMap(form.Value, "name")
	if !name.Has(primary.Code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Name is required for the primary language (" + primary.Code + ")",
			"success": false,
		})
		return
	}

	exhibitionID, ok := parseExhibitionID(c, form.Value)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	audioID, err := pc.Media.UpdateSlot(ctx, nil, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		respondError(c, err)
		return
	}

	post := models.Post{
		Name:         name,
		Description:  formLangMap(form.Value, "description"),
		Content:      formLangMap(form.Value, "content"),
		ExhibitionID: exhibitionID,
		AudioID:      audioID,
	}
	if err := pc.DB.Create(&post).Error; err != nil {
		if audioID != nil {
			pc.Media.DeleteMedia(ctx, *audioID)
		}
		respondError(c, err)
		return
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := pc.Media.UpdateGallery(ctx, services.PostGallery, post.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: post, Message: "Post created successfully"})
}

func (pc *PostController) Update(c *gin.Context) {
	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(pc.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if name := formLangMap(form.Value, "name"); name != nil {
		if !name.Has(primary.Code) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Name is required for the primary language (" + primary.Code + ")",
				"success": false,
			})
			return
		}
		updates["name"] = name
	}
	if description := formLangMap(form.Value, "description"); description != nil {
		updates["description"] = description
	}
	if content := formLangMap(form.Value, "content"); content != nil {
		updates["content"] = content
	}
	if exhibitionID, ok := parseExhibitionID(c, form.Value); !ok {
		return
	} else if exhibitionID != nil {
		updates["exhibition_id"] = *exhibitionID
	}
	if len(updates) > 0 {
		if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	audioID, err := pc.Media.UpdateSlot(ctx, post.AudioID, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		respondError(c, err)
		return
	}
	if !sameID(audioID, post.AudioID) {
		if err := pc.DB.Model(&post).Update("audio_id", audioID).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := pc.Media.UpdateGallery(ctx, services.PostGallery, post.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Post updated successfully"})
}

func (pc *PostController) Destroy(c *gin.Context) {
	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := pc.Media.UpdateGallery(ctx, services.PostGallery, post.ID, models.MediaTypeImage, nil); err != nil {
		respondError(c, err)
		return
	}
	if post.AudioID != nil {
		if err := pc.Media.DeleteMedia(ctx, *post.AudioID); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := pc.DB.Delete(&post).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Post deleted successfully"})
}
