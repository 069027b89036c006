package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicMaintenanceEvents = "promotion.maintenance"
	TopicPromotionAdmin    = "promotion.admin"
)

// Event types.
const (
	MaintenanceCycleCompleted = "maintenance.cycle.completed"
	MaintenanceCycleFailed    = "maintenance.cycle.failed"
	PromotionUpdated          = "promotion.updated"
	PromotionDeactivated      = "promotion.deactivated"
)

const cloudEventsSpecVersion = "1.0"

// CloudEvent is a CloudEvents 1.0 envelope in structured JSON mode.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// NewCloudEvent wraps data in a new envelope with a fresh ID.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		SpecVersion:     cloudEventsSpecVersion,
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            raw,
	}, nil
}

// ParseCloudEvent decodes a structured-mode envelope.
func ParseCloudEvent(b []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := json.Unmarshal(b, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to decode cloud event: %w", err)
	}
	if ce.ID == "" || ce.Type == "" {
		return CloudEvent{}, errors.New("cloud event is missing id or type")
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	if len(e.Data) == 0 {
		return errors.New("cloud event has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// PromotionChangedEvent is published by the promotion admin when a promotion is edited or
// switched off.
type PromotionChangedEvent struct {
	PromotionID uuid.UUID `json:"promotion_id"`
	Active      bool      `json:"active"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MaintenanceCycleEvent describes a finished maintenance cycle.
type MaintenanceCycleEvent struct {
	Trigger           string    `json:"trigger"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Attempts          int       `json:"attempts"`
	ExpiredPromotions int       `json:"expired_promotions"`
	RepairedBookings  int       `json:"repaired_bookings"`
	Error             string    `json:"error,omitempty"`
}
