package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/coinfall/game"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Coins     int
	DupFactor int

	// Results
	TotalTicks int64
	TotalTime  time.Duration
	TickTime   Stats
	Spawns     int64
	Removals   int64
	Mutations  int64
	Impulses   int64
	Reducer    game.ReducerStats
	Stages     []game.StageStats
	FinalScore int
	FinalCash  int
	BonusLevel int

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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
# Coin Pusher Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Coin Population:** {{.Coins}}
- **Duplication Factor:** {{.DupFactor}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Stage Timings
{{range .Stages}}- **{{.Name}}:** avg {{.AvgDuration}} / max {{.MaxDuration}} over {{.ExecutionCount}} ticks
{{end}}
## Event Reduction
- **Raw Contacts:** {{.Reducer.RawContacts}}
- **Queued Events:** {{.Reducer.QueuedEvents}}
- **Deduped:** {{.Reducer.DedupedEvents}} ({{dedupRate .Reducer}} of raw)
- **Rejected:** {{.Reducer.RejectedEvents}}

## Outcome
- **Spawns:** {{.Spawns}}  **Removals:** {{.Removals}}  **Mutations:** {{.Mutations}}
- **Blast Impulses:** {{.Impulses}}
- **Final Score:** {{.FinalScore}}  **Cash:** {{.FinalCash}}  **Bonus Level:** {{.BonusLevel}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"dedupRate": func(rs game.ReducerStats) string {
			if rs.RawContacts == 0 {
				return "0%"
			}
			return fmt.Sprintf("%.1f%%", float64(rs.DedupedEvents)/float64(rs.RawContacts)*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
