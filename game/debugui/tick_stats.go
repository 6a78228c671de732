package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/coinfall/game"
)

// TickStatsPanel shows per-stage timings for the tick pipeline, reducer
// counters, and a frame-time history plot.
type TickStatsPanel struct {
	table *game.Table

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewTickStatsPanel(table *game.Table, historyFrames int) *TickStatsPanel {
	return &TickStatsPanel{
		table:         table,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// RecordFrame feeds one frame's delta time into the history plot.
func (tp *TickStatsPanel) RecordFrame(deltaTime float32) {
	tp.frameHistory[tp.frameIndex] = deltaTime * 1000.0
	tp.frameIndex = (tp.frameIndex + 1) % tp.historyFrames
}

func (tp *TickStatsPanel) Render() {
	if !imgui.BeginV("Tick Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Live Coins: %d", tp.table.Registry().Len()))

	var avgFrameTime float32
	for _, ft := range tp.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(tp.historyFrames)
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &tp.frameHistory[0], int32(len(tp.frameHistory)))

	if imgui.TreeNodeStr("Stage Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StageStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Ticks")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range tp.table.Stats() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Reducer Counters") {
		rs := tp.table.Reducer().Stats()
		imgui.BulletText(fmt.Sprintf("Raw Contacts: %d", rs.RawContacts))
		imgui.BulletText(fmt.Sprintf("Queued Events: %d", rs.QueuedEvents))
		imgui.BulletText(fmt.Sprintf("Deduped: %d", rs.DedupedEvents))
		imgui.BulletText(fmt.Sprintf("Rejected: %d", rs.RejectedEvents))
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock delta time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
