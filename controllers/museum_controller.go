package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

const defaultMaxMuseums = 2

type MuseumController struct {
	DB    *gorm.DB
	Media *services.MediaService
}

func NewMuseumController(db *gorm.DB, media *services.MediaService) *MuseumController {
	return &MuseumController{DB: db, Media: media}
}

func maxMuseumRecords() int {
	if v := os.Getenv("MAX_MUSEUM_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxMuseums
}

func (mc *MuseumController) formatMuseum(c *gin.Context, museum *models.Museum) (gin.H, error) {
	gallery, err := mc.Media.GalleryMedia(c.Request.Context(), services.MuseumGallery, museum.ID)
	if err != nil {
		return nil, err
	}
	images := make([]services.MediaPayload, 0, len(gallery))
	for i := range gallery {
		images = append(images, services.FormatMedia(&gallery[i]))
	}

	return gin.H{
		"id":          museum.ID,
		"name":        museum.Name,
		"description": museum.Description,
		"logo":        services.FormatMedia(museum.Logo),
		"audio":       services.FormatMedia(museum.Audio),
		"images":      images,
	}, nil
}

func (mc *MuseumController) Index(c *gin.Context) {
	var museums []models.Museum
	if err := mc.DB.Preload("Logo").Preload("Audio").Find(&museums).Error; err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(museums))
	for i := range museums {
		formatted, err := mc.formatMuseum(c, &museums[i])
		if err != nil {
			respondError(c, err)
			return
		}
		data = append(data, formatted)
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
		Meta:    gin.H{"max_museums": maxMuseumRecords()},
	})
}

func (mc *MuseumController) Show(c *gin.Context) {
	var museum models.Museum
	if err := mc.DB.Preload("Logo").Preload("Audio").First(&museum, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	formatted, err := mc.formatMuseum(c, &museum)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: formatted})
}

func (mc *MuseumController) Store(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	var count int64
	if err := mc.DB.Model(&models.Museum{}).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	if count >= int64(maxMuseumRecords()) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Maximum number of museums reached", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(mc.DB)
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

	ctx := c.Request.Context()
	logoIn := ParseMediaInput(form, "logo")
	audioIn := ParseMediaInput(form, "audio")

	logoID, err := mc.Media.UpdateSlot(ctx, nil, logoIn, models.MediaTypeImage)
	if err != nil {
		respondError(c, err)
		return
	}
	audioID, err := mc.Media.UpdateSlot(ctx, nil, audioIn, models.MediaTypeAudio)
	if err != nil {
		mc.cleanupSlots(c, logoID)
		respondError(c, err)
		return
	}

	museum := models.Museum{
		Name:        name,
		Description: formLangMap(form.Value, "description"),
		LogoID:      logoID,
		AudioID:     audioID,
	}
	if err := mc.DB.Create(&museum).Error; err != nil {
		mc.cleanupSlots(c, logoID, audioID)
		respondError(c, err)
		return
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := mc.Media.UpdateGallery(ctx, services.MuseumGallery, museum.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: museum, Message: "Museum created successfully"})
}

func (mc *MuseumController) Update(c *gin.Context) {
	var museum models.Museum
	if err := mc.DB.First(&museum, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(mc.DB)
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
	if len(updates) > 0 {
		if err := mc.DB.Model(&museum).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()

	logoID, err := mc.Media.UpdateSlot(ctx, museum.LogoID, ParseMediaInput(form, "logo"), models.MediaTypeImage)
	if err != nil {
		respondError(c, err)
		return
	}
	if !sameID(logoID, museum.LogoID) {
		if err := mc.DB.Model(&museum).Update("logo_id", logoID).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	audioID, err := mc.Media.UpdateSlot(ctx, museum.AudioID, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		respondError(c, err)
		return
	}
	if !sameID(audioID, museum.AudioID) {
		if err := mc.DB.Model(&museum).Update("audio_id", audioID).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	if images := ParseGalleryInputs(form, "images"); images != nil {
		if err := mc.Media.UpdateGallery(ctx, services.MuseumGallery, museum.ID, models.MediaTypeImage, images); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Museum updated successfully"})
}

func (mc *MuseumController) Destroy(c *gin.Context) {
	var museum models.Museum
	if err := mc.DB.First(&museum, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	// Gallery first: clearing the membership set deletes the orphaned media.
	if err := mc.Media.UpdateGallery(ctx, services.MuseumGallery, museum.ID, models.MediaTypeImage, nil); err != nil {
		respondError(c, err)
		return
	}
	mc.cleanupSlots(c, museum.LogoID, museum.AudioID)

	if err := mc.DB.Delete(&museum).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Museum deleted successfully"})
}

// cleanupSlots deletes the media behind singular slots as best-effort
// compensation. An already-missing media is fine; anything else is logged.
func (mc *MuseumController) cleanupSlots(c *gin.Context, ids ...*uint) {
	for _, id := range ids {
		if id == nil {
			continue
		}
		err := mc.Media.DeleteMedia(c.Request.Context(), *id)
		if err != nil && !errors.Is(err, services.ErrMediaNotFound) {
			mc.Media.Log.Warn("failed to delete slot media", zap.Uint("id", *id), zap.Error(err))
		}
	}
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
