package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/divvy/ecs"
)

type Report struct {
	Scenario Scenario

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	UpdateTime    Stats
	World         ecs.WorldStats
	Scheduler     ecs.SchedulerStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# divvy Stress Test Report

## Test Configuration
- **Run Duration:** {{.Scenario.Duration}}
- **Initial Entities:** {{.Scenario.Entities}}
- **Churn Per Tick:** {{.Scenario.Churn}}
- **Max Components Per Entity:** {{.Scenario.MaxComponents}}
- **Seed:** {{.Scenario.Seed}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Scheduler.Systems}}- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}- **{{.Scheduler.Sweep.Name}} (sweep):** avg {{.Scheduler.Sweep.AvgDuration}}, max {{.Scheduler.Sweep.MaxDuration}} over {{.Scheduler.Sweep.ExecutionCount}} runs

## World
- **Entities:** {{.World.Entities}}
- **Capacity:** {{.World.Capacity}} ({{.World.FreeSlots}} free)
{{range .World.Types}}- {{.Name}}: {{.Active}} active / {{.StorageLen}} slots
{{end}}
## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .Scenario.GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
