package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
)

// TermController manages the glossary. Terms carry no media, so the payload
// is plain JSON with per-language maps.
type TermController struct {
	DB *gorm.DB
}

func NewTermController(db *gorm.DB) *TermController {
	return &TermController{DB: db}
}

type termInput struct {
	Term       models.Translations `json:"term" binding:"required"`
	Definition models.Translations `json:"definition"`
}

func (tc *TermController) Index(c *gin.Context) {
	var terms []models.Term
	if err := tc.DB.Order("id").Find(&terms).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: terms})
}

func (tc *TermController) Show(c *gin.Context) {
	var term models.Term
	if err := tc.DB.First(&term, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: term})
}

func (tc *TermController) Store(c *gin.Context) {
	var input termInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	primary, err := getPrimaryLanguage(tc.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	if !input.Term.Has(primary.Code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Term is required for the primary language (" + primary.Code + ")",
			"success": false,
		})
		return
	}

	term := models.Term{Term: input.Term, Definition: input.Definition}
	if err := tc.DB.Create(&term).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: term, Message: "Term created successfully"})
}

func (tc *TermController) Update(c *gin.Context) {
	var term models.Term
	if err := tc.DB.First(&term, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}

	var input termInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	primary, err := getPrimaryLanguage(tc.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	if !input.Term.Has(primary.Code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Term is required for the primary language (" + primary.Code + ")",
			"success": false,
		})
		return
	}

	updates := map[string]interface{}{"term": input.Term}
	if input.Definition != nil {
		updates["definition"] = input.Definition
	}
	if err := tc.DB.Model(&term).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Term updated successfully"})
}

func (tc *TermController) Destroy(c *gin.Context) {
	var term models.Term
	if err := tc.DB.First(&term, c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := tc.DB.Delete(&term).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Term deleted successfully"})
}
