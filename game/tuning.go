package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CoinDef is the economic profile of one coin type. Cost is the shop price
// for a pack; zero means the type is not purchasable.
type CoinDef struct {
	Value int `yaml:"value"`
	Score int `yaml:"score"`
	Cost  int `yaml:"cost"`
}

// ArtifactDef declares a purchasable permanent upgrade.
type ArtifactDef struct {
	ID       string `yaml:"id"`
	BaseCost int    `yaml:"base_cost"`
}

// EconomyTuning holds the progression constants.
type EconomyTuning struct {
	StartCash     int     `yaml:"start_cash"`
	StartTarget   int     `yaml:"start_target"`
	TargetScale   float64 `yaml:"target_scale"`
	PackSize      int     `yaml:"pack_size"`
	BonusPerCoin  float64 `yaml:"bonus_per_coin"`
	DecayGrace    float64 `yaml:"decay_grace"` // simulated seconds without a collect before decay starts
	DecayRate     float64 `yaml:"decay_rate"`  // bonus points lost per simulated second
	JackpotBase   int     `yaml:"jackpot_base"`
	JackpotCap    int     `yaml:"jackpot_cap"`
	ArtifactScale float64 `yaml:"artifact_scale"`
	ScoreMultStep float64 `yaml:"score_mult_step"`
}

// PhysicsTuning holds the constants the core feeds back to the physics
// collaborator and the thresholds it applies to contact callbacks.
type PhysicsTuning struct {
	BedWidth        float64 `yaml:"bed_width"`
	BedDepth        float64 `yaml:"bed_depth"`
	DropHeight      float64 `yaml:"drop_height"`
	BlastRadius     float64 `yaml:"blast_radius"`
	BlastForce      float64 `yaml:"blast_force"`
	BombImpactSpeed float64 `yaml:"bomb_impact_speed"`
	SplitClearance  float64 `yaml:"split_clearance"`
}

// Tuning bundles every numeric knob plus the coin and artifact catalogs.
// Defaults are compiled in; a YAML file can override them wholesale.
type Tuning struct {
	Coins     map[string]CoinDef `yaml:"coins"` // keyed by coin type name
	Artifacts []ArtifactDef      `yaml:"artifacts"`
	StartDeck map[string]int     `yaml:"start_deck"`
	Economy   EconomyTuning      `yaml:"economy"`
	Physics   PhysicsTuning      `yaml:"physics"`
}

// Artifact catalog IDs. Effects are read by external collaborators; the
// core only maintains levels.
const (
	ArtifactBed  = "bed"  // widens the bed
	ArtifactDamp = "damp" // raises settling damping
	ArtifactMult = "mult" // raises the score multiplier
)

func DefaultTuning() *Tuning {
	return &Tuning{
		Coins: map[string]CoinDef{
			"penny":    {Value: 1, Score: 10, Cost: 5},
			"gold":     {Value: 5, Score: 50, Cost: 25},
			"copper":   {Value: 2, Score: 15, Cost: 8},
			"zinc":     {Value: 2, Score: 15, Cost: 8},
			"brass":    {Value: 6, Score: 60},
			"key":      {Value: 1, Score: 10, Cost: 12},
			"chest":    {Value: 2, Score: 20, Cost: 12},
			"treasure": {Value: 10, Score: 150},
			"lucky":    {Value: 1, Score: 10, Cost: 15},
			"midas":    {Value: 3, Score: 30, Cost: 30},
			"bomb":     {Value: 0, Score: 0, Cost: 10},
			"bonus":    {Value: 5, Score: 40},
		},
		Artifacts: []ArtifactDef{
			{ID: ArtifactBed, BaseCost: 50},
			{ID: ArtifactDamp, BaseCost: 40},
			{ID: ArtifactMult, BaseCost: 100},
		},
		StartDeck: map[string]int{
			"penny": 20,
		},
		Economy: EconomyTuning{
			StartCash:     100,
			StartTarget:   500,
			TargetScale:   1.5,
			PackSize:      5,
			BonusPerCoin:  4,
			DecayGrace:    2,
			DecayRate:     10,
			JackpotBase:   3,
			JackpotCap:    12,
			ArtifactScale: 1.5,
			ScoreMultStep: 1.5,
		},
		Physics: PhysicsTuning{
			BedWidth:        10,
			BedDepth:        14,
			DropHeight:      6,
			BlastRadius:     3,
			BlastForce:      8,
			BombImpactSpeed: 5,
			SplitClearance:  0.5,
		},
	}
}

// LoadTuning reads a YAML override on top of the defaults.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tun := DefaultTuning()
	if err := yaml.Unmarshal(data, tun); err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := tun.Validate(); err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	return tun, nil
}

// Validate rejects malformed configuration before a session starts.
func (t *Tuning) Validate() error {
	for name := range t.Coins {
		if _, ok := ParseCoinType(name); !ok {
			return fmt.Errorf("unknown coin type %q", name)
		}
	}
	for i := CoinType(0); i < coinTypeCount; i++ {
		if _, ok := t.Coins[i.String()]; !ok {
			return fmt.Errorf("coin type %q has no definition", i)
		}
	}
	for name := range t.StartDeck {
		if _, ok := ParseCoinType(name); !ok {
			return fmt.Errorf("unknown coin type %q in start deck", name)
		}
	}
	seen := make(map[string]bool, len(t.Artifacts))
	for _, a := range t.Artifacts {
		if a.ID == "" || a.BaseCost <= 0 {
			return fmt.Errorf("artifact %q needs an id and a positive base cost", a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate artifact %q", a.ID)
		}
		seen[a.ID] = true
	}
	e := t.Economy
	if e.PackSize <= 0 || e.TargetScale <= 1 || e.ArtifactScale <= 1 {
		return fmt.Errorf("economy tuning out of range")
	}
	if e.BonusPerCoin <= 0 || e.DecayRate < 0 || e.DecayGrace < 0 {
		return fmt.Errorf("bonus tuning out of range")
	}
	if e.JackpotBase < 0 || e.JackpotCap < e.JackpotBase {
		return fmt.Errorf("jackpot tuning out of range")
	}
	p := t.Physics
	if p.BlastRadius <= 0 || p.BlastForce <= 0 || p.BombImpactSpeed <= 0 {
		return fmt.Errorf("blast tuning out of range")
	}
	return nil
}

// Def returns the economic profile for a coin type.
func (t *Tuning) Def(ct CoinType) (CoinDef, bool) {
	def, ok := t.Coins[ct.String()]
	return def, ok
}
