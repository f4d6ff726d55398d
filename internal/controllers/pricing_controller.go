package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/models"
)

const errPlanTaken = "pricing plan with this name already exists"

type PricingController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

type createPlanRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       Price    `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Highlighted bool     `json:"highlighted"`
	Order       *int     `json:"order"`
	Active      *bool    `json:"active"`
}

type updatePlanRequest struct {
	Name        *string   `json:"name"`
	Price       *Price    `json:"price"`
	Period      *string   `json:"period"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Highlighted *bool     `json:"highlighted"`
	Order       *int      `json:"order"`
	Active      *bool     `json:"active"`
}

func cleanFeatures(in []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return datatypes.NewJSONSlice(out)
}

// List returns active plans in display order.
func (pc *PricingController) List(c *gin.Context) {
	var plans []models.PricingPlan
	if err := pc.DB.Where("active = ?", true).Order("sort_order ASC").Order("created_at ASC").Find(&plans).Error; err != nil {
		respondError(c, pc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (pc *PricingController) AdminList(c *gin.Context) {
	var plans []models.PricingPlan
	if err := pc.DB.Order("sort_order ASC").Order("created_at ASC").Find(&plans).Error; err != nil {
		respondError(c, pc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (pc *PricingController) Get(c *gin.Context) {
	var p models.PricingPlan
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&p).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pricing plan not found"})
			return
		}
		respondError(c, pc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *PricingController) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := models.PricingPlan{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price.String(),
		Period:      req.Period,
		Description: req.Description,
		Features:    cleanFeatures(req.Features),
		Highlighted: req.Highlighted,
		Active:      true,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.Order != nil {
		p.Order = *req.Order
	} else {
		next, err := nextSortOrder(pc.DB, &models.PricingPlan{})
		if err != nil {
			respondError(c, pc.Logger, err)
			return
		}
		p.Order = next
	}

	if err := pc.DB.Create(&p).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": errPlanTaken})
			return
		}
		respondError(c, pc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (pc *PricingController) Update(c *gin.Context) {
	var p models.PricingPlan
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&p).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pricing plan not found"})
			return
		}
		respondError(c, pc.Logger, err)
		return
	}
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		p.Price = req.Price.String()
	}
	if req.Period != nil {
		p.Period = *req.Period
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Features != nil {
		p.Features = cleanFeatures(*req.Features)
	}
	if req.Highlighted != nil {
		p.Highlighted = *req.Highlighted
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	if err := pc.DB.Save(&p).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": errPlanTaken})
			return
		}
		respondError(c, pc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *PricingController) Delete(c *gin.Context) {
	res := pc.DB.Where("id = ?", c.Param("id")).Delete(&models.PricingPlan{})
	if res.Error != nil {
		respondError(c, pc.Logger, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "pricing plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
