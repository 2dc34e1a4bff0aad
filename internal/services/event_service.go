package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/websocket"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, taskID *int64)
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records lifecycle events and pushes them to connected
// websocket clients. Event recording is best-effort: a failure is logged
// but never fails the operation that produced the event.
type EventService struct {
	db  *sql.DB
	hub *websocket.Hub
}

// NewEventService creates a new EventService. The hub may be nil in tests.
func NewEventService(db *sql.DB, hub *websocket.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event to the database and broadcasts it.
func (s *EventService) CreateEvent(eventType, level, message string, taskID *int64) {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		TaskID:  taskID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, task_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to prepare event insert")
		return
	}
	defer stmt.Close()

	if _, err := stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.TaskID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
		return
	}

	s.broadcast(event)
}

// GetRecentEvents retrieves the most recent events, newest first.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, task_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.TaskID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *EventService) broadcast(event models.Event) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(websocket.Message{Action: "event", Payload: event})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode event for broadcast")
		return
	}
	s.hub.Publish(payload)
}
