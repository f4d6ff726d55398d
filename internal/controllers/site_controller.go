package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/utils"
)

// SiteController serves render-ready sections to the public site.
type SiteController struct {
	Content *content.Service
	Logger  *zap.Logger
}

// Section returns the stored fields of :section backfilled with defaults.
// Responses carry an ETag; a matching If-None-Match yields 304.
func (sc *SiteController) Section(c *gin.Context) {
	section := strings.TrimSpace(c.Param("section"))
	if section == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section is required"})
		return
	}

	fields := sc.Content.ResolveWithDefaults(c.Request.Context(), section)
	body, err := json.Marshal(fields)
	if err != nil {
		respondError(c, sc.Logger, err)
		return
	}

	etag := utils.ETag(body)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=60")
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Sections lists the keys that have built-in defaults.
func (sc *SiteController) Sections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": sc.Content.Defaults().Sections()})
}
