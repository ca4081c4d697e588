package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/divvy/ecs"
)

// WorldStatsPanel plots frame times and shows the occupancy of Target. When
// Scheduler is set, per-system timings are listed too.
type WorldStatsPanel struct {
	Target    *ecs.World
	Scheduler *ecs.Scheduler

	timer        FrameTimer
	frameHistory []float32
	frameIndex   int
}

func NewWorldStatsPanel(target *ecs.World, scheduler *ecs.Scheduler, historyFrames int) WorldStatsPanel {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return WorldStatsPanel{
		Target:       target,
		Scheduler:    scheduler,
		timer:        NewFrameTimer(),
		frameHistory: make([]float32, historyFrames),
	}
}

func (ps *WorldStatsPanel) Update() {
	ps.Render(ps.timer.GetDeltaTime())
}

// Clone copies the panel's targets with a fresh frame history.
func (ps *WorldStatsPanel) Clone(src *WorldStatsPanel) {
	*ps = NewWorldStatsPanel(src.Target, src.Scheduler, len(src.frameHistory))
}

// record stores one frame time in milliseconds and returns the average over
// the history window.
func (ps *WorldStatsPanel) record(deltaTime float32) float32 {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)

	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(len(ps.frameHistory))
}

func (ps *WorldStatsPanel) Render(deltaTime float32) {
	if !imgui.BeginV("World Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	if ps.Target == nil {
		imgui.Text("No world attached")
		imgui.End()
		return
	}

	avgFrameTime := ps.record(deltaTime)
	stats := ps.Target.Stats()

	imgui.Text(fmt.Sprintf("World: %s (%s)", stats.Name, stats.ID))
	imgui.Text(fmt.Sprintf("Entities: %d", stats.Entities))
	imgui.Text(fmt.Sprintf("Capacity: %d (%d free)", stats.Capacity, stats.FreeSlots))
	imgui.Text(fmt.Sprintf("Component Types: %d", len(stats.Types)))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Type Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("TypeStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Active")
			imgui.TableSetupColumn("Storage")
			imgui.TableHeadersRow()

			for _, t := range stats.Types {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(t.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", t.Active))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", t.StorageLen))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if ps.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		sched := ps.Scheduler.GetStats()
		imgui.Text(fmt.Sprintf("Ticks: %d", sched.Ticks))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range append(sched.Systems, sched.Sweep) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() FrameTimer {
	return FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
