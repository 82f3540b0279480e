package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
)

type LanguageController struct {
	DB *gorm.DB
}

func NewLanguageController(db *gorm.DB) *LanguageController {
	return &LanguageController{DB: db}
}

// getPrimaryLanguage returns the language flagged as primary, falling back to
// the first configured language. The code is passed explicitly into
// validation rather than read from ambient state.
func getPrimaryLanguage(db *gorm.DB) (*models.Language, error) {
	var lang models.Language
	if err := db.Where("is_primary = ?", true).First(&lang).Error; err == nil {
		return &lang, nil
	}
	if err := db.Order("id").First(&lang).Error; err != nil {
		return nil, err
	}
	return &lang, nil
}

func (lc *LanguageController) Index(c *gin.Context) {
	var languages []models.Language
	if err := lc.DB.Order("id").Find(&languages).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: languages})
}

func (lc *LanguageController) Store(c *gin.Context) {
	var input struct {
		Code      string `json:"code" binding:"required,max=10"`
		Name      string `json:"name" binding:"required,max=100"`
		IsPrimary bool   `json:"is_primary"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	language := models.Language{Code: input.Code, Name: input.Name, IsPrimary: input.IsPrimary}
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsPrimary {
			if err := tx.Model(&models.Language{}).Where("is_primary = ?", true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&language).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: language, Message: "Language created successfully"})
}

// SetPrimary flags one language as primary; exactly one language carries the
// flag at any time.
func (lc *LanguageController) SetPrimary(c *gin.Context) {
	var language models.Language
	if err := lc.DB.First(&language, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Language{}).Where("is_primary = ?", true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&language).Update("is_primary", true).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: language, Message: "Primary language updated"})
}

func (lc *LanguageController) Destroy(c *gin.Context) {
	var language models.Language
	if err := lc.DB.First(&language, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	if language.IsPrimary {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the primary language", "success": false})
		return
	}
	if err := lc.DB.Delete(&language).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Language deleted successfully"})
}
