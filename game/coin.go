package game

import "math"

// CoinID is a stable, opaque identifier for a coin entity. IDs are minted
// by the Registry and never reused within a session. Merge and split
// products receive fresh IDs; transmutation keeps the target's ID.
type CoinID uint64

// CoinType enumerates every coin kind that can exist on the bed.
type CoinType uint8

const (
	CoinPenny CoinType = iota
	CoinGold
	CoinCopper
	CoinZinc
	CoinBrass
	CoinKey
	CoinChest
	CoinTreasure
	CoinLucky
	CoinMidas
	CoinBomb
	CoinBonus

	coinTypeCount // must stay last
)

var coinTypeNames = [coinTypeCount]string{
	CoinPenny:    "penny",
	CoinGold:     "gold",
	CoinCopper:   "copper",
	CoinZinc:     "zinc",
	CoinBrass:    "brass",
	CoinKey:      "key",
	CoinChest:    "chest",
	CoinTreasure: "treasure",
	CoinLucky:    "lucky",
	CoinMidas:    "midas",
	CoinBomb:     "bomb",
	CoinBonus:    "bonus",
}

func (t CoinType) String() string {
	if t >= coinTypeCount {
		return "unknown"
	}
	return coinTypeNames[t]
}

// ParseCoinType resolves a type name from config back to its CoinType.
func ParseCoinType(name string) (CoinType, bool) {
	for i, n := range coinTypeNames {
		if n == name {
			return CoinType(i), true
		}
	}
	return 0, false
}

// Coin is the authoritative record for one in-flight coin. It is owned
// exclusively by the Registry; collaborators see read-only views keyed by
// the same ID.
type Coin struct {
	ID   CoinID
	Type CoinType
	Pos  Vec3
	Rot  Vec3 // only Y is meaningful

	// HasSplit latches true the first time a splitter coin clones itself,
	// so a lucky coin splits exactly once.
	HasSplit bool
	Active   bool // reserved
}

// Vec3 is a 3-component float vector. Only the handful of operations the
// core needs are defined.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Mid returns the midpoint between two positions.
func Mid(a, b Vec3) Vec3 {
	return a.Add(b).Scale(0.5)
}
