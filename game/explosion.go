package game

// blastUpwardBias is added to the normalized Y direction so detonations
// lift coins off the bed instead of only shoving them sideways.
const blastUpwardBias = 0.35

// Detonate applies a radial impulse with linear falloff to every body
// within radius of center. Magnitude is force × (1 − d/R): full strength
// at the center, exactly zero at and beyond the boundary. A body exactly
// at the center is pushed straight up. Pure function of its inputs.
func Detonate(center Vec3, radius, force float64, bodies []Body, impulse func(CoinID, Vec3)) {
	if radius <= 0 {
		return
	}
	for _, b := range bodies {
		delta := b.Pos.Sub(center)
		dist := delta.Len()
		if dist >= radius {
			continue
		}
		var dir Vec3
		if dist == 0 {
			dir = Vec3{Y: 1}
		} else {
			dir = delta.Scale(1 / dist)
			dir.Y += blastUpwardBias
		}
		impulse(b.Coin, dir.Scale(force*(1-dist/radius)))
	}
}
