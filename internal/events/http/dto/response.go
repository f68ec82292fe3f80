// Package dto provides data transfer objects for event listing responses.
package dto

import (
	"time"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// EventResponse represents one audit event in API responses.
type EventResponse struct {
	ID              string    `json:"id"`
	SecretID        string    `json:"secret_id"`
	Type            string    `json:"type"`
	ClientIP        string    `json:"client_ip"`
	ClientUserAgent string    `json:"client_user_agent"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListEventsResponse wraps one page of the event trail.
type ListEventsResponse struct {
	Events   []EventResponse `json:"events"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// MapEventsToListResponse converts domain events to an API response page.
func MapEventsToListResponse(events []*eventsDomain.Event, page, pageSize int) ListEventsResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, EventResponse{
			ID:              event.ID.String(),
			SecretID:        event.SecretID.String(),
			Type:            string(event.Type),
			ClientIP:        event.ClientIP,
			ClientUserAgent: event.ClientUserAgent,
			CreatedAt:       event.CreatedAt,
		})
	}

	return ListEventsResponse{
		Events:   responses,
		Page:     page,
		PageSize: pageSize,
	}
}
