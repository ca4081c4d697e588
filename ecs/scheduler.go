package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/rotisserie/eris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Sweep           SystemStats
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system, or for the
// component sweep itself.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStats(name string) *systemStatsInternal {
	return &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *systemStatsInternal) snapshot() SystemStats {
	avgDuration := time.Duration(0)
	minDuration := time.Duration(0)
	if s.executionCount > 0 {
		avgDuration = s.totalDuration / time.Duration(s.executionCount)
		minDuration = s.minDuration
	}

	return SystemStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avgDuration,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// Scheduler drives a World one tick at a time: registered systems run first,
// in registration order, then the World's component sweep and command flush.
type Scheduler struct {
	world       *World
	tick        uint64
	systems     []System
	systemStats []*systemStatsInternal
	sweepStats  *systemStatsInternal
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:      world,
		systems:    make([]System, 0),
		sweepStats: newSystemStats("Update"),
	}
}

// Register adds a system to the scheduler. Its stats are named after the
// system's type; a type registered more than once, such as SystemFunc, gets
// its registration index appended.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	name := systemType.Name()
	if name == "" || s.hasSystem(name) || systemType == reflect.TypeFor[SystemFunc]() {
		name = fmt.Sprintf("%s#%d", name, len(s.systems))
	}
	s.RegisterNamed(name, system)
}

// RegisterNamed adds a system whose stats are reported under name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, newSystemStats(name))
}

func (s *Scheduler) hasSystem(name string) bool {
	for _, stats := range s.systemStats {
		if stats.name == name {
			return true
		}
	}
	return false
}

// Once runs a single tick with the given delta time. A failing system aborts
// the tick before the sweep.
func (s *Scheduler) Once(dt float64) error {
	s.tick++
	frame := newUpdateFrame(s.tick, dt, s.world)

	for i, system := range s.systems {
		start := time.Now()
		err := system.Execute(frame)
		s.systemStats[i].record(time.Since(start))
		if err != nil {
			return eris.Wrapf(err, "system %s at tick %d", s.systemStats[i].name, s.tick)
		}
	}

	start := time.Now()
	err := s.world.Update()
	s.sweepStats.record(time.Since(start))
	return err
}

// Run executes ticks at the given interval until the context is cancelled or a
// tick fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Sweep:       s.sweepStats.snapshot(),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		stats.Systems[i] = internal.snapshot()
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
