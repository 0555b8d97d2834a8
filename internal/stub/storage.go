package stub

import (
	"sync"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

type sleepSegment struct {
	start time.Time
	end   time.Time
	stage domain.SleepStage
}

type stepPoint struct {
	start time.Time
	end   time.Time
	count int64
}

// Storage keeps seeded fitness data and received pushes in memory.
type Storage struct {
	mu     sync.RWMutex
	sleep  []sleepSegment
	steps  []stepPoint
	pushes []Push
}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleep = nil
	s.steps = nil
	s.pushes = nil
}

func (s *Storage) AddSleep(start, end time.Time, stage domain.SleepStage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleep = append(s.sleep, sleepSegment{start: start, end: end, stage: stage})
}

// AddSteps splits count over one-minute points in [start, end). The
// remainder goes to the first point.
func (s *Storage) AddSteps(start, end time.Time, count int64) int {
	minutes := int64(end.Sub(start) / time.Minute)
	if minutes <= 0 {
		minutes = 1
	}

	per := count / minutes
	remainder := count % minutes

	points := make([]stepPoint, 0, minutes)
	for i := int64(0); i < minutes; i++ {
		pointStart := start.Add(time.Duration(i) * time.Minute)
		c := per
		if i == 0 {
			c += remainder
		}
		points = append(points, stepPoint{start: pointStart, end: pointStart.Add(time.Minute), count: c})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, points...)

	return len(points)
}

func (s *Storage) SleepInRange(start, end time.Time) []sleepSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []sleepSegment
	for _, seg := range s.sleep {
		if seg.end.Before(start) || seg.start.After(end) {
			continue
		}
		out = append(out, seg)
	}
	return out
}

func (s *Storage) StepsInRange(start, end time.Time) []stepPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []stepPoint
	for _, p := range s.steps {
		if p.start.Before(start) || !p.start.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Storage) AddPush(p Push) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes = append(s.pushes, p)
}

func (s *Storage) Pushes() []Push {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Push, len(s.pushes))
	copy(out, s.pushes)
	return out
}
