package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
	"github.com/fucina/flexhibition-api/utils"
)

const qrCodeSize = 256

type SectionController struct {
	DB    *gorm.DB
	Media *services.MediaService
}

func NewSectionController(db *gorm.DB, media *services.MediaService) *SectionController {
	return &SectionController{DB: db, Media: media}
}

func appURL() string {
	if v := os.Getenv("APP_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func formatSection(section *models.Section) gin.H {
	return gin.H{
		"id":          section.ID,
		"title":       section.Title,
		"subtitle":    section.Subtitle,
		"description": section.Description,
		"image":       services.FormatMedia(section.Image),
		"video":       services.FormatMedia(section.Video),
		"audio":       services.FormatMedia(section.Audio),
		"qr_code":     services.FormatMedia(section.QrCode),
	}
}

func (sc *SectionController) Index(c *gin.Context) {
	var sections []models.Section
	if err := sc.DB.Preload("Image").Preload("Video").Preload("Audio").Preload("QrCode").
		Find(&sections).Error; err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(sections))
	for i := range sections {
		data = append(data, formatSection(&sections[i]))
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

func (sc *SectionController) Show(c *gin.Context) {
	var section models.Section
	if err := sc.DB.Preload("Image").Preload("Video").Preload("Audio").Preload("QrCode").
		First(&section, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: formatSection(&section)})
}

// generateQrCodes builds one QR code per configured language pointing at the
// section's public page and stores them as a single qr media asset.
func (sc *SectionController) generateQrCodes(c *gin.Context, sectionID uint) (*uint, error) {
	var languages []models.Language
	if err := sc.DB.Order("id").Find(&languages).Error; err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		return nil, nil
	}

	files := map[string][]byte{}
	titles := models.Translations{}
	for _, lang := range languages {
		url := fmt.Sprintf("%s/section/%d/%s", appURL(), sectionID, lang.Code)
		png, err := utils.GenerateQrPng(url, qrCodeSize)
		if err != nil {
			return nil, err
		}
		files[lang.Code] = png
		titles[lang.Code] = fmt.Sprintf("Section %d QR (%s)", sectionID, lang.Code)
	}

	media, err := sc.Media.CreateMediaFromBytes(
		c.Request.Context(), models.MediaTypeQr, files, "png", titles, nil, "")
	if err != nil {
		return nil, err
	}
	return &media.ID, nil
}

func (sc *SectionController) Store(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(sc.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	title := formLangMap(form.Value, "title")
	if !title.Has(primary.Code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Title is required for the primary language (" + primary.Code + ")",
			"success": false,
		})
		return
	}

	ctx := c.Request.Context()

	imageID, err := sc.Media.UpdateSlot(ctx, nil, ParseMediaInput(form, "image"), models.MediaTypeImage)
	if err != nil {
		respondError(c, err)
		return
	}
	videoID, err := sc.Media.UpdateSlot(ctx, nil, ParseMediaInput(form, "video"), models.MediaTypeVideo)
	if err != nil {
		sc.cleanupSlots(c, imageID)
		respondError(c, err)
		return
	}
	audioID, err := sc.Media.UpdateSlot(ctx, nil, ParseMediaInput(form, "audio"), models.MediaTypeAudio)
	if err != nil {
		sc.cleanupSlots(c, imageID, videoID)
		respondError(c, err)
		return
	}

	section := models.Section{
		Title:       title,
		Subtitle:    formLangMap(form.Value, "subtitle"),
		Description: formLangMap(form.Value, "description"),
		ImageID:     imageID,
		VideoID:     videoID,
		AudioID:     audioID,
	}
	if err := sc.DB.Create(&section).Error; err != nil {
		sc.cleanupSlots(c, imageID, videoID, audioID)
		respondError(c, err)
		return
	}

	qrID, err := sc.generateQrCodes(c, section.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if qrID != nil {
		if err := sc.DB.Model(&section).Update("qr_code_id", qrID).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: section, Message: "Section created successfully"})
}

func (sc *SectionController) Update(c *gin.Context) {
	var section models.Section
	if err := sc.DB.First(&section, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	primary, err := getPrimaryLanguage(sc.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if title := formLangMap(form.Value, "title"); title != nil {
		if !title.Has(primary.Code) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Title is required for the primary language (" + primary.Code + ")",
				"success": false,
			})
			return
		}
		updates["title"] = title
	}
	if subtitle := formLangMap(form.Value, "subtitle"); subtitle != nil {
		updates["subtitle"] = subtitle
	}
	if description := formLangMap(form.Value, "description"); description != nil {
		updates["description"] = description
	}
	if len(updates) > 0 {
		if err := sc.DB.Model(&section).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	slots := []struct {
		field   string
		current *uint
		typ     models.MediaType
		column  string
	}{
		{"image", section.ImageID, models.MediaTypeImage, "image_id"},
		{"video", section.VideoID, models.MediaTypeVideo, "video_id"},
		{"audio", section.AudioID, models.MediaTypeAudio, "audio_id"},
	}
	for _, slot := range slots {
		newID, err := sc.Media.UpdateSlot(ctx, slot.current, ParseMediaInput(form, slot.field), slot.typ)
		if err != nil {
			respondError(c, err)
			return
		}
		if !sameID(newID, slot.current) {
			if err := sc.DB.Model(&section).Update(slot.column, newID).Error; err != nil {
				respondError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Section updated successfully"})
}

func (sc *SectionController) Destroy(c *gin.Context) {
	var section models.Section
	if err := sc.DB.First(&section, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	sc.cleanupSlots(c, section.ImageID, section.VideoID, section.AudioID, section.QrCodeID)

	if err := sc.DB.Delete(&section).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Section deleted successfully"})
}

// cleanupSlots deletes the media behind singular slots as best-effort
// compensation. An already-missing media is fine; anything else is logged.
func (sc *SectionController) cleanupSlots(c *gin.Context, ids ...*uint) {
	for _, id := range ids {
		if id == nil {
			continue
		}
		err := sc.Media.DeleteMedia(c.Request.Context(), *id)
		if err != nil && !errors.Is(err, services.ErrMediaNotFound) {
			sc.Media.Log.Warn("failed to delete slot media", zap.Uint("id", *id), zap.Error(err))
		}
	}
}
