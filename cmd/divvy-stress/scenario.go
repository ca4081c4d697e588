package main

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Scenario configures one stress run. It can be loaded from YAML; flags set
// explicitly on the command line take precedence over the file.
type Scenario struct {
	Duration        time.Duration `yaml:"duration"`
	Entities        int           `yaml:"entities"`
	Churn           int           `yaml:"churn"`
	MaxComponents   int           `yaml:"max_components"`
	InitialCapacity int           `yaml:"initial_capacity"`
	Seed            int64         `yaml:"seed"`
	Profile         string        `yaml:"profile"`
	ProfilePath     string        `yaml:"profile_path"`
	GCPauseMetrics  bool          `yaml:"gc_pause_metrics"`
}

func defaultScenario() Scenario {
	return Scenario{
		Duration:      10 * time.Second,
		Entities:      10000,
		Churn:         100,
		MaxComponents: componentKinds,
		Seed:          1,
		ProfilePath:   ".",
	}
}

// LoadScenario reads a YAML scenario on top of the defaults.
func LoadScenario(filename string) (Scenario, error) {
	s := defaultScenario()

	data, err := os.ReadFile(filename)
	if err != nil {
		return s, eris.Wrapf(err, "stress: load %s", filename)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, eris.Wrapf(err, "stress: unmarshal %s", filename)
	}
	return s, nil
}

// registerFlags binds the scenario fields to fs with s's values as defaults.
func (s *Scenario) registerFlags(fs *flag.FlagSet) {
	fs.DurationVar(&s.Duration, "duration", s.Duration, "The total duration the test should run for.")
	fs.IntVar(&s.Entities, "entities", s.Entities, "The initial number of entities to create.")
	fs.IntVar(&s.Churn, "churn", s.Churn, "Entities destroyed and recreated every tick.")
	fs.IntVar(&s.MaxComponents, "max-components", s.MaxComponents, "Upper bound of components per entity.")
	fs.IntVar(&s.InitialCapacity, "capacity", s.InitialCapacity, "Slots reserved before population.")
	fs.Int64Var(&s.Seed, "seed", s.Seed, "Random seed for population and churn.")
	fs.StringVar(&s.Profile, "profile", s.Profile, "Profile mode: cpu, mem, allocs, block, mutex, goroutine, trace.")
	fs.StringVar(&s.ProfilePath, "profile-path", s.ProfilePath, "Directory profiles are written to.")
	fs.BoolVar(&s.GCPauseMetrics, "gc-pause-metrics", s.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
}

// parseScenario parses args. When -scenario names a file, its values replace
// the defaults and every flag set in args is applied on top again.
func parseScenario(args []string) (Scenario, error) {
	fs := flag.NewFlagSet("divvy-stress", flag.ContinueOnError)
	path := fs.String("scenario", "", "Optional YAML scenario file.")

	flagged := defaultScenario()
	flagged.registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return flagged, err
	}
	if *path == "" {
		return flagged, flagged.Validate()
	}

	s, err := LoadScenario(*path)
	if err != nil {
		return s, err
	}

	// Re-binding onto the loaded scenario and replaying only the flags that
	// were set keeps file values for everything else.
	replay := flag.NewFlagSet("divvy-stress", flag.ContinueOnError)
	s.registerFlags(replay)
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "scenario" || visitErr != nil {
			return
		}
		visitErr = replay.Set(f.Name, f.Value.String())
	})
	if visitErr != nil {
		return s, visitErr
	}
	return s, s.Validate()
}

func (s Scenario) Validate() error {
	switch {
	case s.Duration <= 0:
		return eris.Errorf("stress: duration must be positive, got %s", s.Duration)
	case s.Entities < 0:
		return eris.Errorf("stress: entities must not be negative, got %d", s.Entities)
	case s.Churn < 0:
		return eris.Errorf("stress: churn must not be negative, got %d", s.Churn)
	case s.MaxComponents < 1 || s.MaxComponents > componentKinds:
		return eris.Errorf("stress: max components must be within [1, %d], got %d", componentKinds, s.MaxComponents)
	case s.InitialCapacity < 0:
		return eris.Errorf("stress: capacity must not be negative, got %d", s.InitialCapacity)
	}
	_, err := profileMode(s.Profile)
	return err
}

// profileMode maps a -profile value to a pkg/profile mode. An empty name or
// "none" disables profiling and yields nil.
func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "", "none":
		return nil, nil
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	case "block":
		return profile.BlockProfile, nil
	case "mutex":
		return profile.MutexProfile, nil
	case "goroutine":
		return profile.GoroutineProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	}
	return nil, eris.Errorf("stress: unknown profile mode %q", name)
}
