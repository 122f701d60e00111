package notify

import (
	"sync"
)

// EventType тип изменения слота уведомления
type EventType int

const (
	// EventShown показано новое уведомление
	EventShown EventType = iota
	// EventExpired уведомление истекло и слот опустел
	EventExpired
	// EventDismissed уведомление закрыто явно
	EventDismissed
)

// Event изменение слота уведомления
type Event struct {
	Type         EventType
	Notification Notification
}

// eventService управляет подписчиками на изменения слота уведомления
type eventService struct {
	subscribers map[chan Event]bool
	mu          sync.RWMutex
}

func newEventService() *eventService {
	return &eventService{
		subscribers: make(map[chan Event]bool),
	}
}

// subscribe добавляет нового подписчика и возвращает канал для получения событий
func (s *eventService) subscribe() chan Event {
	ch := make(chan Event, 10) // Буферизованный канал для защиты от backpressure
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = true
	return ch
}

// unsubscribe удаляет подписчика и закрывает его канал
func (s *eventService) unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// publish отправляет событие всем подписчикам
// Если канал подписчика переполнен, событие пропускается
func (s *eventService) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// closeAll закрывает все каналы подписчиков
func (s *eventService) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
}
