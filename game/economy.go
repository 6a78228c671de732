package game

import "math"

// Phase is the session state machine: MENU → PLAYING → {SHOP, GAME_OVER};
// SHOP → PLAYING; GAME_OVER is terminal until an explicit restart.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseShop
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlaying:
		return "PLAYING"
	case PhaseShop:
		return "SHOP"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return "unknown"
}

const bonusMax = 100

// Effect is a side effect produced inside a state update and drained by
// the caller after the update returns, so effects never run re-entrantly
// inside the mutation that produced them.
type Effect interface {
	isEffect()
}

// JackpotEffect requests a burst of bonus coins. Queued when the bonus
// meter fills; the table spawns the coins on the next tick.
type JackpotEffect struct {
	Level int // bonus level that triggered the burst
	Count int
}

func (JackpotEffect) isEffect() {}

// Economy is the score/cash/bonus/round state machine. All transitions are
// methods; there is no ambient shared state.
type Economy struct {
	tun *Tuning

	phase      Phase
	score      int
	target     int
	cash       int
	ante       int
	bonus      float64
	bonusLevel int

	deck      Deck
	artifacts map[string]int

	sinceCollect float64 // simulated seconds since the last collection
	pending      []Effect
}

func NewEconomy(tun *Tuning) *Economy {
	e := &Economy{tun: tun}
	e.toInitial()
	return e
}

// toInitial is the MENU snapshot a restart returns to.
func (e *Economy) toInitial() {
	e.phase = PhaseMenu
	e.score = 0
	e.target = e.tun.Economy.StartTarget
	e.cash = e.tun.Economy.StartCash
	e.ante = 1
	e.bonus = 0
	e.bonusLevel = 1
	e.deck = make(Deck, len(e.tun.StartDeck))
	for name, n := range e.tun.StartDeck {
		t, _ := ParseCoinType(name)
		e.deck[t] = n
	}
	e.artifacts = make(map[string]int)
	e.sinceCollect = 0
	e.pending = nil
}

func (e *Economy) Phase() Phase     { return e.phase }
func (e *Economy) Score() int       { return e.score }
func (e *Economy) Target() int      { return e.target }
func (e *Economy) Cash() int        { return e.cash }
func (e *Economy) Ante() int        { return e.ante }
func (e *Economy) Bonus() float64   { return e.bonus }
func (e *Economy) BonusLevel() int  { return e.bonusLevel }
func (e *Economy) DeckCounts() Deck { return e.deck }

// StartRun begins play from the menu.
func (e *Economy) StartRun() bool {
	if e.phase != PhaseMenu {
		return false
	}
	e.phase = PhasePlaying
	return true
}

// ScoreMultiplier is 1.5^level of the score artifact.
func (e *Economy) ScoreMultiplier() float64 {
	return math.Pow(e.tun.Economy.ScoreMultStep, float64(e.ArtifactLevel(ArtifactMult)))
}

func (e *Economy) bonusMultiplier() float64 {
	return 1 + 0.1*float64(e.bonusLevel-1)
}

// Collect credits one collected coin: cash by its value, score by its base
// score times the artifact and bonus multipliers, and the bonus meter by a
// flat step. Filling the meter is edge-triggered: bonus resets to zero,
// the level increments, and a jackpot burst is queued, never run inline.
func (e *Economy) Collect(def CoinDef) {
	if e.phase != PhasePlaying {
		return
	}
	e.cash += def.Value
	e.score += int(math.Floor(float64(def.Score) * e.ScoreMultiplier() * e.bonusMultiplier()))
	e.sinceCollect = 0
	e.bonus += e.tun.Economy.BonusPerCoin
	if e.bonus >= bonusMax {
		e.bonus = 0
		e.bonusLevel++
		count := e.tun.Economy.JackpotBase + 2*e.bonusLevel + e.ArtifactLevel(ArtifactBed)
		if count > e.tun.Economy.JackpotCap {
			count = e.tun.Economy.JackpotCap
		}
		e.pending = append(e.pending, JackpotEffect{Level: e.bonusLevel, Count: count})
	}
}

// Advance integrates simulated time. After the grace window with no
// collection, the bonus meter decays linearly toward zero. Driven by tick
// dt, not wall clock, so time-scaling the simulation scales decay.
func (e *Economy) Advance(dt float64) {
	if e.phase != PhasePlaying || dt <= 0 {
		return
	}
	grace := e.tun.Economy.DecayGrace
	prev := e.sinceCollect
	e.sinceCollect += dt
	if e.bonus <= 0 || e.sinceCollect <= grace {
		return
	}
	decaying := e.sinceCollect - grace
	if elapsed := e.sinceCollect - prev; decaying > elapsed {
		decaying = elapsed
	}
	e.bonus -= e.tun.Economy.DecayRate * decaying
	if e.bonus < 0 {
		e.bonus = 0
	}
}

// EndRound resolves the round: reaching the target opens the shop and
// resets score and the bonus meter; falling short ends the run.
func (e *Economy) EndRound() Phase {
	if e.phase != PhasePlaying {
		return e.phase
	}
	if e.score >= e.target {
		e.phase = PhaseShop
		e.score = 0
		e.bonus = 0
		e.bonusLevel = 1
	} else {
		e.phase = PhaseGameOver
	}
	return e.phase
}

// NextRound leaves the shop: the ante rises and the target scales up.
func (e *Economy) NextRound() bool {
	if e.phase != PhaseShop {
		return false
	}
	e.ante++
	e.target = int(math.Floor(float64(e.target) * e.tun.Economy.TargetScale))
	e.phase = PhasePlaying
	e.sinceCollect = 0
	return true
}

// Restart returns a finished run to the initial menu snapshot.
func (e *Economy) Restart() bool {
	if e.phase != PhaseGameOver {
		return false
	}
	e.toInitial()
	return true
}

// DrainEffects returns the queued deferred effects exactly once.
func (e *Economy) DrainEffects() []Effect {
	effects := e.pending
	e.pending = nil
	return effects
}
