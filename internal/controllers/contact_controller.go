package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/mailer"
	"github.com/zaqqye/agency_backend/internal/models"
	"github.com/zaqqye/agency_backend/internal/utils"
)

const (
	referencePrefix   = "CL"
	referenceAttempts = 3
	notifyTimeout     = 30 * time.Second
)

type ContactController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
	Logger   *zap.Logger
}

type createLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

func (r createLeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 120)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, validation.RuneLength(0, 40)),
		validation.Field(&r.Message, validation.Required, validation.RuneLength(1, 5000)),
	)
}

type updateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var leadStatuses = []interface{}{models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusClosed}

// Create stores a contact request and notifies the agency in the
// background. Notification failures never affect the response.
func (cc *ContactController) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		respondError(c, cc.Logger, err)
		return
	}

	lead := models.ContactLead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Service: strings.TrimSpace(req.Service),
		Budget:  strings.TrimSpace(req.Budget),
		Message: req.Message,
		Status:  models.LeadStatusNew,
	}

	var err error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		lead.ID = ""
		if lead.Reference, err = utils.ReferenceCode(referencePrefix, 2, 4); err != nil {
			break
		}
		if err = cc.DB.Create(&lead).Error; !isDuplicate(err) {
			break
		}
	}
	if err != nil {
		respondError(c, cc.Logger, err)
		return
	}

	cc.notify(lead)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "thank you, we will get back to you shortly",
		"id":        lead.ID,
		"reference": lead.Reference,
	})
}

func (cc *ContactController) notify(lead models.ContactLead) {
	if cc.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := cc.Notifier.NotifyLead(ctx, lead); err != nil {
			cc.Logger.Warn("lead notification failed",
				zap.String("reference", lead.Reference),
				zap.Error(err),
			)
		}
	}()
}

// AdminList returns leads newest first; ?status= filters.
func (cc *ContactController) AdminList(c *gin.Context) {
	p := parsePage(c, 20)
	base := cc.DB.Model(&models.ContactLead{})
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" {
		if err := validation.Validate(status, validation.In(leadStatuses...)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	var leads []models.ContactLead
	listQ := base.Session(&gorm.Session{}).Order("created_at DESC")
	if !p.All {
		listQ = listQ.Offset(p.offset()).Limit(p.Limit)
	}
	if err := listQ.Find(&leads).Error; err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	meta := p.meta(total)
	if status != "" {
		meta["status"] = status
	}
	c.JSON(http.StatusOK, gin.H{"data": leads, "meta": meta})
}

func (cc *ContactController) AdminGet(c *gin.Context) {
	var lead models.ContactLead
	if err := cc.DB.Where("id = ?", c.Param("id")).First(&lead).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact lead not found"})
			return
		}
		respondError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (cc *ContactController) UpdateStatus(c *gin.Context) {
	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if err := validation.Validate(status, validation.In(leadStatuses...)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var lead models.ContactLead
	if err := cc.DB.Where("id = ?", c.Param("id")).First(&lead).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact lead not found"})
			return
		}
		respondError(c, cc.Logger, err)
		return
	}
	if err := cc.DB.Model(&lead).Update("status", status).Error; err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	lead.Status = status
	c.JSON(http.StatusOK, lead)
}

func (cc *ContactController) Delete(c *gin.Context) {
	res := cc.DB.Where("id = ?", c.Param("id")).Delete(&models.ContactLead{})
	if res.Error != nil {
		respondError(c, cc.Logger, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact lead not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
