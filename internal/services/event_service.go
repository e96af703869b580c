package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"datamint/internal/logger"
	"datamint/internal/models"
)

// eventService handles marketplace event recording.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

// Log records a marketplace event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *eventService) Log(actor, action string, datasetID uint, ipAddress string, payload map[string]any) {
	var payloadJSON string
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Get().Errorw("failed to marshal event payload", "error", err, "action", action)
			payloadJSON = "{}"
		} else {
			payloadJSON = string(data)
		}
	}

	entry := &models.Event{
		Actor:     actor,
		Action:    action,
		DatasetID: datasetID,
		IPAddress: ipAddress,
		Payload:   payloadJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create event entry",
			"error", err,
			"actor", actor,
			"action", action,
			"dataset_id", datasetID,
		)
	}
}
