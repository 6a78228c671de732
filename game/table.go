package game

import (
	"math/rand/v2"
	"time"
)

// StageStats is the execution record for one tick stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

const (
	stageBatch = iota
	stageEconomy
	stageEffects
	stageSnapshot
	stageCount
)

var stageNames = [stageCount]string{"batch", "economy", "effects", "snapshot"}

// CoinView is the read-only render view of one live coin.
type CoinView struct {
	ID       CoinID
	Type     CoinType
	Pos      Vec3
	Rot      Vec3
	HasSplit bool
}

// TickReport is handed to the render layer after each tick: the full
// ordered entity list plus the one-shot notifications for hooks.
type TickReport struct {
	Coins   []CoinView
	Spawned []CoinID
	Removed []CoinID
	Mutated []TypeChange
}

// Table is one live session: registry, rule table, reducer, processor and
// economy wired to a physics collaborator. Everything runs on the single
// game-logic goroutine; the physics layer only reads the tick report.
type Table struct {
	tun     *Tuning
	rules   *Rules
	reg     *Registry
	red     *Reducer
	proc    *Processor
	econ    *Economy
	physics Physics
	bodies  *BodyTable

	rng   *rand.Rand
	stats [stageCount]*stageStatsInternal
}

// NewTable builds a session. Invalid tuning is a programming error and
// panics at startup, never per-event.
func NewTable(tun *Tuning, rules *Rules, physics Physics, seed uint64) *Table {
	if err := tun.Validate(); err != nil {
		panic("table: " + err.Error())
	}
	reg := NewRegistry()
	econ := NewEconomy(tun)
	t := &Table{
		tun:     tun,
		rules:   rules,
		reg:     reg,
		red:     NewReducer(rules, reg, tun),
		proc:    NewProcessor(reg, rules, econ, physics, tun),
		econ:    econ,
		physics: physics,
		bodies:  NewBodyTable(),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range t.stats {
		t.stats[i] = &stageStatsInternal{
			name:        stageNames[i],
			minDuration: time.Duration(1<<63 - 1),
		}
	}
	return t
}

func (t *Table) Economy() *Economy   { return t.econ }
func (t *Table) Registry() *Registry { return t.reg }
func (t *Table) Reducer() *Reducer   { return t.red }
func (t *Table) Bodies() *BodyTable  { return t.bodies }
func (t *Table) Tuning() *Tuning     { return t.tun }

// HandleContact forwards a raw collision callback to the reducer. Callable
// any number of times per contact pair per tick.
func (t *Table) HandleContact(selfID CoinID, other Contact, relVel, point Vec3) {
	t.red.HandleContact(selfID, other, relVel, point)
}

// HandleSensor forwards a drop-zone entry to the reducer.
func (t *Table) HandleSensor(id CoinID) {
	t.red.HandleSensor(id)
}

// DropCoin plays one coin from the deck onto the bed at the given point.
func (t *Table) DropCoin(ct CoinType, pos Vec3) (*Coin, bool) {
	if t.econ.Phase() != PhasePlaying {
		return nil, false
	}
	if !t.econ.deck.Take(ct) {
		return nil, false
	}
	return t.reg.Spawn(ct, pos, Vec3{}), true
}

// Fill seeds the bed with coins at the given positions (initial fill).
func (t *Table) Fill(ct CoinType, positions []Vec3) {
	for _, pos := range positions {
		t.reg.Spawn(ct, pos, Vec3{Y: t.rng.Float64() * 360})
	}
}

// Tick runs the per-frame pipeline after physics has advanced: drain the
// batched events, advance the economy clock, apply deferred effects, and
// snapshot the entity list for rendering.
func (t *Table) Tick(dt float64) TickReport {
	t.timed(stageBatch, func() { t.proc.Drain(t.red) })
	t.timed(stageEconomy, func() { t.econ.Advance(dt) })
	t.timed(stageEffects, func() { t.applyEffects() })

	var report TickReport
	t.timed(stageSnapshot, func() { report = t.snapshot() })
	return report
}

// applyEffects drains the economy's pending-effect queue. Jackpot bursts
// land here, outside the state update that scheduled them.
func (t *Table) applyEffects() {
	for _, eff := range t.econ.DrainEffects() {
		switch eff := eff.(type) {
		case JackpotEffect:
			t.jackpotBurst(eff.Count)
		}
	}
}

func (t *Table) jackpotBurst(count int) {
	halfW := t.tun.Physics.BedWidth / 2
	for range count {
		pos := Vec3{
			X: (t.rng.Float64()*2 - 1) * halfW * 0.8,
			Y: t.tun.Physics.DropHeight,
			Z: t.tun.Physics.BedDepth * 0.25 * t.rng.Float64(),
		}
		t.reg.Spawn(CoinBonus, pos, Vec3{})
	}
}

func (t *Table) snapshot() TickReport {
	coins := t.reg.Coins()
	report := TickReport{Coins: make([]CoinView, len(coins))}
	for i, c := range coins {
		report.Coins[i] = CoinView{
			ID:       c.ID,
			Type:     c.Type,
			Pos:      c.Pos,
			Rot:      c.Rot,
			HasSplit: c.HasSplit,
		}
	}
	log := t.reg.DrainLog()
	report.Spawned = log.Spawned
	report.Removed = log.Removed
	report.Mutated = log.Mutated
	return report
}

func (t *Table) timed(stage int, fn func()) {
	start := time.Now()
	fn()
	duration := time.Since(start)

	stats := t.stats[stage]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Stats returns per-stage execution statistics for the tick pipeline.
func (t *Table) Stats() []StageStats {
	out := make([]StageStats, stageCount)
	for i, internal := range t.stats {
		avg := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}
		out[i] = StageStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return out
}
