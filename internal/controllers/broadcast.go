package controllers

import (
	"github.com/zaqqye/agency_backend/internal/models"
	"github.com/zaqqye/agency_backend/internal/ws"
)

const eventSectionUpdated = "section_updated"

// broadcastSectionUpdate pushes the saved document to live preview clients.
func broadcastSectionUpdate(hubs *ws.Hubs, rec *models.ContentSection) {
	if hubs == nil || hubs.Preview == nil || rec == nil {
		return
	}
	hubs.Preview.Publish(ws.SectionEvent{
		Type:      eventSectionUpdated,
		Section:   rec.Section,
		Fields:    rec.Fields,
		UpdatedAt: rec.UpdatedAt,
	})
}
