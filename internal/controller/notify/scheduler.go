package notify

import (
	"sort"
	"sync"
	"time"
)

// Timer отменяемый токен отложенного вызова
type Timer interface {
	// Stop отменяет вызов; возвращает false, если вызов уже произошел или отменен
	Stop() bool
}

// Scheduler источник времени и отложенных вызовов
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler планировщик на основе time.AfterFunc
type SystemScheduler struct{}

// Now возвращает текущее время
func (SystemScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc вызывает f в отдельной горутине через d
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler детерминированный планировщик: время двигается только через Advance
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

var _ Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler создает планировщик с начальным временем start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

type manualTimer struct {
	s       *ManualScheduler
	seq     int
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now возвращает текущее виртуальное время
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc регистрирует вызов f через d виртуального времени
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, seq: s.seq, at: s.now.Add(d), f: f}
	s.timers = append(s.timers, t)
	return t
}

// Pending количество активных таймеров
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance сдвигает время на d и синхронно вызывает все наступившие таймеры по порядку
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due []*manualTimer
	rest := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped || t.fired:
		case !t.at.After(s.now):
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.f()
	}
}
