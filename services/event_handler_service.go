package services

import (
	"log"
	"sync"
	"time"

	"dueday/dueday/broker"
	"dueday/dueday/database"
	"dueday/dueday/models"
)

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents()
}

// EventHandlerService drains the outbox: it periodically picks up events that
// were written alongside mutations and publishes them to the broker.
type EventHandlerService struct {
	db     *database.Database
	ticker *time.Ticker

	mu   sync.Mutex
	done chan struct{}
}

func NewEventHandlerService(db *database.Database) EventHandlerServiceInterface {
	return &EventHandlerService{
		db:     db,
		ticker: time.NewTicker(1 * time.Second),
	}
}

func (s *EventHandlerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.ticker.Reset(1 * time.Second)
	s.done = make(chan struct{})
	go s.processPendingEvents(s.done)
}

// Stop halts the drain loop. Stopping the ticker alone would leave the
// goroutine parked on the ticker channel forever, so the done channel is
// what actually releases it.
func (s *EventHandlerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return
	}
	s.ticker.Stop()
	close(s.done)
	s.done = nil
}

func (s *EventHandlerService) processPendingEvents(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-s.ticker.C:
			s.ProcessPendingEvents()
		}
	}
}

// ProcessPendingEvents runs a single drain pass over the outbox.
func (s *EventHandlerService) ProcessPendingEvents() {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).Order("timestamp").Find(&events).Error; err != nil {
		log.Printf("Error fetching events: %v", err)
		return
	}

	for _, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			log.Printf("Error dispatching event %s: %v", event.ID, err)
			continue
		}
	}
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	subject := broker.SubjectForEntity(event.Entity)
	if err := broker.PublishMessage(subject, event.ID.String(), event.Data); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.db.DB.Model(&models.Event{}).Where("id = ?", event.ID).
		Updates(map[string]interface{}{"dispatched": true, "dispatched_at": &now}).Error
}

var EventHandlerServiceInstance EventHandlerServiceInterface

