package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/models"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

type createTeamMemberRequest struct {
	Name        string            `json:"name" binding:"required"`
	Role        string            `json:"role" binding:"required"`
	Bio         string            `json:"bio"`
	Image       string            `json:"image"`
	SocialLinks map[string]string `json:"socialLinks"`
	Order       *int              `json:"order"`
	Active      *bool             `json:"active"`
}

type updateTeamMemberRequest struct {
	Name        *string            `json:"name"`
	Role        *string            `json:"role"`
	Bio         *string            `json:"bio"`
	Image       *string            `json:"image"`
	SocialLinks *map[string]string `json:"socialLinks"`
	Order       *int               `json:"order"`
	Active      *bool              `json:"active"`
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func socialLinksMap(in map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}

// List returns active members in display order.
func (tc *TeamController) List(c *gin.Context) {
	var members []models.TeamMember
	if err := tc.DB.Where("active = ?", true).Order("sort_order ASC").Order("created_at ASC").Find(&members).Error; err != nil {
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": members})
}

func (tc *TeamController) AdminList(c *gin.Context) {
	var members []models.TeamMember
	if err := tc.DB.Order("sort_order ASC").Order("created_at ASC").Find(&members).Error; err != nil {
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": members})
}

func (tc *TeamController) Get(c *gin.Context) {
	var m models.TeamMember
	if err := tc.DB.Where("id = ?", c.Param("id")).First(&m).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Create appends the member at the end of the list unless an order is given.
func (tc *TeamController) Create(c *gin.Context) {
	var req createTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := models.TeamMember{
		Name:        strings.TrimSpace(req.Name),
		Role:        strings.TrimSpace(req.Role),
		Bio:         req.Bio,
		Image:       req.Image,
		SocialLinks: socialLinksMap(req.SocialLinks),
		Active:      true,
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if req.Order != nil {
		m.Order = *req.Order
	} else {
		maxOrder, err := nextSortOrder(tc.DB, &models.TeamMember{})
		if err != nil {
			respondError(c, tc.Logger, err)
			return
		}
		m.Order = maxOrder
	}

	if err := tc.DB.Create(&m).Error; err != nil {
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (tc *TeamController) Update(c *gin.Context) {
	var m models.TeamMember
	if err := tc.DB.Where("id = ?", c.Param("id")).First(&m).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}
		respondError(c, tc.Logger, err)
		return
	}
	var req updateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		m.Role = strings.TrimSpace(*req.Role)
	}
	if req.Bio != nil {
		m.Bio = *req.Bio
	}
	if req.Image != nil {
		m.Image = *req.Image
	}
	if req.SocialLinks != nil {
		m.SocialLinks = socialLinksMap(*req.SocialLinks)
	}
	if req.Order != nil {
		m.Order = *req.Order
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if m.Name == "" || m.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and role are required"})
		return
	}
	if err := tc.DB.Save(&m).Error; err != nil {
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (tc *TeamController) Delete(c *gin.Context) {
	res := tc.DB.Where("id = ?", c.Param("id")).Delete(&models.TeamMember{})
	if res.Error != nil {
		respondError(c, tc.Logger, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Reorder assigns sort_order from the position of each id in the request.
func (tc *TeamController) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ids, err := parseIDs(req.IDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids is empty"})
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&models.TeamMember{}).Where("id = ?", id).Update("sort_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reordered", "count": len(ids)})
}

// parseIDs validates ids as UUIDs and rejects duplicates, returning them in
// canonical form.
func parseIDs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", r)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate id %q", r)
		}
		seen[id] = struct{}{}
		out = append(out, id.String())
	}
	return out, nil
}
