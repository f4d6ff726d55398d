package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/models"
	"github.com/zaqqye/agency_backend/internal/ws"
)

type CMSController struct {
	Content *content.Service
	Hubs    *ws.Hubs
	Logger  *zap.Logger
}

// Get returns every stored section, or with ?section=k the single
// flattened document. A section that was never written is returned as {}.
func (cc *CMSController) Get(c *gin.Context) {
	if section, ok := c.GetQuery("section"); ok {
		rec, err := cc.Content.Find(c.Request.Context(), section)
		if err != nil {
			respondError(c, cc.Logger, err)
			return
		}
		if rec == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, rec)
		return
	}

	all, err := cc.Content.ResolveAll(c.Request.Context())
	if err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	if all == nil {
		all = []models.ContentSection{}
	}
	c.JSON(http.StatusOK, all)
}

// Upsert takes {"section": k, <fields...>} and merges the fields into k.
func (cc *CMSController) Upsert(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object"})
		return
	}
	section, _ := body[models.KeySection].(string)
	if strings.TrimSpace(section) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section is required"})
		return
	}
	delete(body, models.KeySection)

	rec, err := cc.Content.Upsert(c.Request.Context(), section, body)
	if err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	broadcastSectionUpdate(cc.Hubs, rec)
	c.JSON(http.StatusOK, rec)
}
