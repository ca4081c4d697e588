package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/divvy/ecs"
)

func main() {
	scenario, err := parseScenario(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	mode, _ := profileMode(scenario.Profile)
	if mode != nil {
		p := profile.Start(mode, profile.ProfilePath(scenario.ProfilePath), profile.NoShutdownHook)
		defer p.Stop()
	}

	if err := run(context.Background(), scenario, os.Stdout); err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}
}

func run(ctx context.Context, s Scenario, out io.Writer) error {
	log.Println("Starting divvy stress test...")

	ecs.EnableDiagnostics(ecs.NewLogSink(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))))
	defer ecs.DisableDiagnostics()

	// 1. Setup World and Scheduler
	world := ecs.NewWorld(ecs.WithName("stress"), ecs.WithInitialCapacity(s.InitialCapacity))
	if err := registerStressComponents(world); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(s.Seed))

	// 2. Populate the world with initial entities
	log.Printf("Populating world with %d entities...\n", s.Entities)
	population := make([]*ecs.Entity, 0, s.Entities)
	for range s.Entities {
		e, err := spawnRandomEntity(world, rng, rng.Intn(s.MaxComponents)+1)
		if err != nil {
			return err
		}
		population = append(population, e)
	}
	defer func() {
		for _, e := range population {
			e.Destroy()
		}
	}()
	log.Println("Population complete.")

	churn := &churnSystem{
		Population:    population,
		Count:         s.Churn,
		MaxComponents: s.MaxComponents,
		Rng:           rng,
	}
	scheduler := ecs.NewScheduler(world)
	scheduler.RegisterNamed("churn", churn)

	// 3. Run the simulation loop
	report := &Report{
		Scenario: s,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", s.Duration)
	ctx, cancel := context.WithTimeout(ctx, s.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(float64(deltaTime) / float64(time.Second)); err != nil {
				return err
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.World = world.Stats()
	report.Scheduler = *scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report
	fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")

	log.Println("Stress test complete.")
	return nil
}
