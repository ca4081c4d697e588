package main

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/divvy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
duration: 250ms
entities: 42
churn: 3
profile: cpu
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, s.Duration)
	assert.Equal(t, 42, s.Entities)
	assert.Equal(t, 3, s.Churn)
	assert.Equal(t, "cpu", s.Profile)

	// Keys missing from the file keep their defaults.
	assert.Equal(t, componentKinds, s.MaxComponents)
	assert.Equal(t, ".", s.ProfilePath)
}

func TestLoadScenarioErrors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(writeScenario(t, "entities: [not, a, number]"))
	assert.Error(t, err)
}

func TestParseScenario(t *testing.T) {
	path := writeScenario(t, `
duration: 2s
entities: 500
churn: 7
`)

	tests := []struct {
		name     string
		args     []string
		entities int
		churn    int
		duration time.Duration
	}{
		{"defaults", nil, 10000, 100, 10 * time.Second},
		{"flags only", []string{"-entities", "5"}, 5, 100, 10 * time.Second},
		{"file only", []string{"-scenario", path}, 500, 7, 2 * time.Second},
		{"flag beats file", []string{"-scenario", path, "-churn", "1"}, 500, 1, 2 * time.Second},
		{"flag before scenario", []string{"-duration", "1s", "-scenario", path}, 500, 7, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScenario(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.entities, s.Entities)
			assert.Equal(t, tt.churn, s.Churn)
			assert.Equal(t, tt.duration, s.Duration)
		})
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"zero duration", func(s *Scenario) { s.Duration = 0 }},
		{"negative entities", func(s *Scenario) { s.Entities = -1 }},
		{"negative churn", func(s *Scenario) { s.Churn = -1 }},
		{"too many components", func(s *Scenario) { s.MaxComponents = componentKinds + 1 }},
		{"no components", func(s *Scenario) { s.MaxComponents = 0 }},
		{"unknown profile", func(s *Scenario) { s.Profile = "heap" }},
	}

	require.NoError(t, defaultScenario().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultScenario()
			tt.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestProfileMode(t *testing.T) {
	for _, name := range []string{"cpu", "mem", "allocs", "block", "mutex", "goroutine", "trace"} {
		mode, err := profileMode(name)
		require.NoError(t, err, name)
		assert.NotNil(t, mode, name)
	}

	mode, err := profileMode("none")
	require.NoError(t, err)
	assert.Nil(t, mode)

	_, err = profileMode("bogus")
	assert.Error(t, err)
}

func TestSpawnRandomEntity(t *testing.T) {
	world := ecs.NewWorld()
	require.NoError(t, registerStressComponents(world))
	rng := rand.New(rand.NewSource(7))

	e, err := spawnRandomEntity(world, rng, componentKinds)
	require.NoError(t, err)
	defer e.Destroy()

	assert.Len(t, world.ComponentsOf(e.ID()), componentKinds)

	owner, err := ecs.Get[Owner](e)
	require.NoError(t, err)
	assert.Equal(t, e.Ref(), owner.Ref)
}

func TestChurnSystemKeepsPopulation(t *testing.T) {
	world := ecs.NewWorld()
	require.NoError(t, registerStressComponents(world))
	rng := rand.New(rand.NewSource(3))

	population := make([]*ecs.Entity, 0, 20)
	for range 20 {
		e, err := spawnRandomEntity(world, rng, 2)
		require.NoError(t, err)
		population = append(population, e)
	}

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&churnSystem{Population: population, Count: 5, MaxComponents: 3, Rng: rng})

	for range 10 {
		require.NoError(t, scheduler.Once(1.0/60.0))
		assert.Equal(t, 20, world.Len())
	}
	for _, e := range population {
		assert.True(t, e.Valid())
		e.Destroy()
	}
	assert.Equal(t, 0, world.Len())
}

func TestRunWritesReport(t *testing.T) {
	s := defaultScenario()
	s.Duration = 50 * time.Millisecond
	s.Entities = 100
	s.Churn = 10

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), s, &out))

	report := out.String()
	assert.Contains(t, report, "# divvy Stress Test Report")
	assert.Contains(t, report, "**Initial Entities:** 100")
	assert.Contains(t, report, "main.Position")
	assert.Contains(t, report, "--- End of Report ---")
}
