// Package notify реализует однослотовую очередь уведомлений с автоистечением.
//
// Новое уведомление вытесняет текущее и перезапускает отсчет. Токен таймера
// предыдущего уведомления отменяется до планирования нового, а счетчик
// поколений делает запоздавший таймер пустой операцией.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration время жизни уведомления по умолчанию
const DefaultDuration = 3 * time.Second

// Kind класс уведомления
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindValidationError
	KindConnectionError
	KindFailure
)

// String возвращает имя класса уведомления
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidationError:
		return "validation_error"
	case KindConnectionError:
		return "connection_error"
	case KindFailure:
		return "failure"
	default:
		return "info"
	}
}

// IsError сообщает, описывает ли уведомление ошибку
func (k Kind) IsError() bool {
	return k == KindValidationError || k == KindConnectionError || k == KindFailure
}

// Notification уведомление для пользователя
type Notification struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue однослотовая очередь уведомлений, побеждает последнее
type Queue struct {
	mu       sync.Mutex
	sched    Scheduler
	duration time.Duration
	current  *Notification
	timer    Timer
	gen      uint64
	events   *eventService
}

// NewQueue создает очередь; nil scheduler заменяется системным, duration <= 0 на DefaultDuration
func NewQueue(sched Scheduler, duration time.Duration) *Queue {
	if sched == nil {
		sched = SystemScheduler{}
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{
		sched:    sched,
		duration: duration,
		events:   newEventService(),
	}
}

// Show показывает уведомление, вытесняя текущее, и перезапускает отсчет
func (q *Queue) Show(kind Kind, message string) Notification {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
	}
	q.gen++
	gen := q.gen
	n := Notification{Kind: kind, Message: message, CreatedAt: q.sched.Now()}
	q.current = &n
	q.timer = q.sched.AfterFunc(q.duration, func() { q.expire(gen) })
	q.mu.Unlock()

	q.events.publish(Event{Type: EventShown, Notification: n})
	return n
}

// Current возвращает видимое уведомление
func (q *Queue) Current() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Notification{}, false
	}
	return *q.current, true
}

// Dismiss закрывает видимое уведомление досрочно
func (q *Queue) Dismiss() {
	q.mu.Lock()
	if q.current == nil {
		q.mu.Unlock()
		return
	}
	n := *q.current
	q.clearLocked()
	q.mu.Unlock()

	q.events.publish(Event{Type: EventDismissed, Notification: n})
}

// Subscribe возвращает канал изменений слота
func (q *Queue) Subscribe() <-chan Event {
	return q.events.subscribe()
}

// Unsubscribe отписывает канал, полученный из Subscribe
func (q *Queue) Unsubscribe(ch <-chan Event) {
	q.events.mu.RLock()
	var target chan Event
	for c := range q.events.subscribers {
		if (<-chan Event)(c) == ch {
			target = c
			break
		}
	}
	q.events.mu.RUnlock()
	if target != nil {
		q.events.unsubscribe(target)
	}
}

// Close отменяет таймер и закрывает каналы подписчиков
func (q *Queue) Close() {
	q.mu.Lock()
	q.clearLocked()
	q.mu.Unlock()
	q.events.closeAll()
}

func (q *Queue) expire(gen uint64) {
	q.mu.Lock()
	if gen != q.gen || q.current == nil {
		q.mu.Unlock()
		return
	}
	n := *q.current
	q.current = nil
	q.timer = nil
	q.mu.Unlock()

	q.events.publish(Event{Type: EventExpired, Notification: n})
}

func (q *Queue) clearLocked() {
	if q.timer != nil {
		q.timer.Stop()
	}
	q.gen++
	q.current = nil
	q.timer = nil
}
