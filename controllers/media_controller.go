package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

// MediaController exposes the media lifecycle directly, for standalone assets
// not managed through a parent entity's form.
type MediaController struct {
	Media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{Media: media}
}

func (mc *MediaController) Index(c *gin.Context) {
	mediaType := models.MediaType(c.Query("type"))
	if mediaType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type query parameter is required", "success": false})
		return
	}

	media, err := mc.Media.GetMediaByType(c.Request.Context(), mediaType)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]services.MediaPayload, 0, len(media))
	for i := range media {
		data = append(data, services.FormatMedia(&media[i]))
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

// parseMediaAttrs reads the optional tags[] values and the custom_properties
// JSON object from a media form. Nil when neither was submitted.
func parseMediaAttrs(form *multipart.Form) (*services.MediaAttrs, error) {
	var attrs services.MediaAttrs
	if vals, ok := form.Value["tags[]"]; ok {
		attrs.Tags = pq.StringArray(vals)
	}
	if v := formValue(form, "custom_properties"); v != "" {
		props := datatypes.JSONMap{}
		if err := json.Unmarshal([]byte(v), &props); err != nil {
			return nil, err
		}
		attrs.CustomProperties = props
	}
	if attrs.Tags == nil && attrs.CustomProperties == nil {
		return nil, nil
	}
	return &attrs, nil
}

func (mc *MediaController) Store(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	mediaType := models.MediaType(formValue(form, "type"))
	files := formLangFiles(form.File, "file")
	titles := formLangMap(form.Value, "title")
	descriptions := formLangMap(form.Value, "description")

	attrs, err := parseMediaAttrs(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "custom_properties must be a JSON object", "success": false})
		return
	}

	media, err := mc.Media.CreateMedia(
		c.Request.Context(), mediaType, files, titles, descriptions, formValue(form, "folder"), attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    services.FormatMedia(media),
		Message: "Media created successfully",
	})
}

func (mc *MediaController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric", "success": false})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form is required", "success": false})
		return
	}

	attrs, err := parseMediaAttrs(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "custom_properties must be a JSON object", "success": false})
		return
	}

	media, err := mc.Media.UpdateMedia(
		c.Request.Context(),
		uint(id),
		formLangFiles(form.File, "file"),
		formLangMap(form.Value, "title"),
		formLangMap(form.Value, "description"),
		formValue(form, "folder"),
		attrs,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    services.FormatMedia(media),
		Message: "Media updated successfully",
	})
}

func (mc *MediaController) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric", "success": false})
		return
	}

	if err := mc.Media.DeleteMedia(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Media deleted successfully"})
}
