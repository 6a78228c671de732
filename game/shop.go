package game

import "math"

// Deck is the player's unspent coin inventory: type → count.
type Deck map[CoinType]int

func (d Deck) Count(t CoinType) int { return d[t] }

// Take decrements the count for a drop. Returns false on an empty slot.
func (d Deck) Take(t CoinType) bool {
	if d[t] <= 0 {
		return false
	}
	d[t]--
	return true
}

// ArtifactLevel returns the owned level of an upgrade; 0 means not owned.
func (e *Economy) ArtifactLevel(id string) int {
	return e.artifacts[id]
}

// ArtifactCost returns the next purchase price: baseCost × 1.5^level,
// floored. False if the id is not in the catalog.
func (e *Economy) ArtifactCost(id string) (int, bool) {
	for _, a := range e.tun.Artifacts {
		if a.ID == id {
			level := e.artifacts[id]
			return int(math.Floor(float64(a.BaseCost) * math.Pow(e.tun.Economy.ArtifactScale, float64(level)))), true
		}
	}
	return 0, false
}

// BuyArtifact purchases one level of an upgrade from the shop. Rejected
// without mutation when out of phase, unknown, or unaffordable.
func (e *Economy) BuyArtifact(id string) bool {
	if e.phase != PhaseShop {
		return false
	}
	cost, ok := e.ArtifactCost(id)
	if !ok || e.cash < cost {
		return false
	}
	e.cash -= cost
	e.artifacts[id]++
	return true
}

// BuyCoins purchases one pack of a coin type from the shop. The pack price
// is the type's Cost; types with zero cost are not purchasable.
func (e *Economy) BuyCoins(t CoinType) bool {
	if e.phase != PhaseShop {
		return false
	}
	def, ok := e.tun.Def(t)
	if !ok || def.Cost <= 0 || e.cash < def.Cost {
		return false
	}
	e.cash -= def.Cost
	e.deck[t] += e.tun.Economy.PackSize
	return true
}
