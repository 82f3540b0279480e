package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

type ExhibitionController struct {
	DB    *gorm.DB
	Media *services.MediaService
}

func NewExhibitionController(db *gorm.DB, media *services.MediaService) *ExhibitionController {
	return &ExhibitionController{DB: db, Media: media}
}

func (ec *ExhibitionController) formatExhibition(c *gin.Context, exhibition *models.Exhibition) (gin.H, error) {
	gallery, err := ec.Media.GalleryMedia(c.Request.Context(), services.ExhibitionGallery, exhibition.ID)
	if err != nil {
		return nil, err
	}
	images := make([]services.MediaPayload, 0, len(gallery))
	for i := range gallery {
		images = append(images, services.FormatMedia(&gallery[i]))
	}

	return gin.H{
		"id":          exhibition.ID,
		"name":        exhibition.Name,
		"description": exhibition.Description,
		"start_date":  exhibition.StartDate,
		"end_date":    exhibition.EndDate,
		"is_archived": exhibition.IsArchived,
		"is_active":   exhibition.IsActive(),
		"museum_id":   exhibition.MuseumID,
		"audio":       services.FormatMedia(exhibition.Audio),
		"images":      images,
	}, nil
}

func (ec *ExhibitionController) Index(c *gin.Context) {
	query := ec.DB.Preload("Audio")
	switch c.Query("status") {
	case "active":
		query = models.ScopeActive(query)
	case "archived":
		query = query.Where("is_archived = ?", true)
	}

	var exhibitions []models.Exhibition
	if err := query.Find(&exhibitions).Error; err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(exhibitions))
	for i := range exhibitions {
		formatted, err := ec.formatExhibition(c, &exhibitions[i])
		if err != nil {
			respondError(c, err)
			return
		}
		data = append(data, formatted)
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

func (ec *ExhibitionController) Show(c *gin.Context) {
	var exhibition models.Exhibition
	if err := ec.DB.Preload("Audio").First(&exhibition, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	formatted, err := ec.formatExhibition(c, &exhibition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: formatted})
}

// parseExhibitionFields reads the scalar (non-media) form fields shared by
// Store and Update. Dates use the 2006-01-02 form format.
func parseExhibitionFields(c *gin.Context, form map[string][]string) (map[string]interface{}, bool) {
	updates := map[string]interface{}{}

	get := func(key string) string {
		if vals, ok := form[key]; ok && len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	for _, key := range []string{"start_date", "end_date"} {
		if v := get(key); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be YYYY-MM-DD", "success": false})
				return nil, false
			}
			updates[key] = parsed
		}
	}
	if v := get("is_archived"); v != "" {
		archived, _ := strconv.ParseBool(v)
		updates["is_archived"] = archived
	}
	if v := get("museum_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "museum_id must be numeric", "success": false})
			return nil, false
		}
		updates["museum_id"] = uint(id)
	}

	return updates, true
}

func (ec *ExhibitionController) Store(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(ec.DB)
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

	fields, ok := parseExhibitionFields(c, form.Value)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	audioID, err := ec.Media.UpdateSlot(ctx, nil, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		respondError(c, err)
		return
	}

	exhibition := models.Exhibition{
		Name:        name,
		Description: formLangMap(form.Value, "description"),
		AudioID:     audioID,
	}
	if v, ok := fields["start_date"].(time.Time); ok {
		exhibition.StartDate = &v
	}
	if v, ok := fields["end_date"].(time.Time); ok {
		exhibition.EndDate = &v
	}
	if v, ok := fields["is_archived"].(bool); ok {
		exhibition.IsArchived = v
	}
	if v, ok := fields["museum_id"].(uint); ok {
		exhibition.MuseumID = &v
	}

	if err := ec.DB.Create(&exhibition).Error; err != nil {
		if audioID != nil {
			ec.Media.DeleteMedia(ctx, *audioID)
		}
		respondError(c, err)
		return
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := ec.Media.UpdateGallery(ctx, services.ExhibitionGallery, exhibition.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: exhibition, Message: "Exhibition created successfully"})
}

func (ec *ExhibitionController) Update(c *gin.Context) {
	var exhibition models.Exhibition
	if err := ec.DB.First(&exhibition, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(ec.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	updates, ok := parseExhibitionFields(c, form.Value)
	if !ok {
		return
	}
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
	if len(updates) > 0 {
		if err := ec.DB.Model(&exhibition).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	audioID, err := ec.Media.UpdateSlot(ctx, exhibition.AudioID, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		respondError(c, err)
		return
	}
	if !sameID(audioID, exhibition.AudioID) {
		if err := ec.DB.Model(&exhibition).Update("audio_id", audioID).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := ec.Media.UpdateGallery(ctx, services.ExhibitionGallery, exhibition.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Exhibition updated successfully"})
}

func (ec *ExhibitionController) Destroy(c *gin.Context) {
	var exhibition models.Exhibition
	if err := ec.DB.First(&exhibition, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := ec.Media.UpdateGallery(ctx, services.ExhibitionGallery, exhibition.ID, models.MediaTypeImage, nil); err != nil {
		respondError(c, err)
		return
	}
	if exhibition.AudioID != nil {
		if err := ec.Media.DeleteMedia(ctx, *exhibition.AudioID); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := ec.DB.Delete(&exhibition).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Exhibition deleted successfully"})
}
