package game

// Processor drains the reducer once per tick and applies the resulting
// registry mutations in a fixed priority order: combine → split →
// transmute → explode → collect. The fixed order plus the consumed-ID set
// means a coin eaten by an earlier event this tick silently drops out of
// every later event that references it.
type Processor struct {
	reg     *Registry
	rules   *Rules
	econ    *Economy
	physics Physics
	tun     *Tuning
}

func NewProcessor(reg *Registry, rules *Rules, econ *Economy, physics Physics, tun *Tuning) *Processor {
	return &Processor{
		reg:     reg,
		rules:   rules,
		econ:    econ,
		physics: physics,
		tun:     tun,
	}
}

// Drain applies everything the reducer queued this tick and resets it.
func (p *Processor) Drain(red *Reducer) {
	consumed := make(map[CoinID]bool)

	for _, ev := range red.combines {
		if consumed[ev.a] || consumed[ev.b] {
			continue
		}
		a, ok := p.reg.Get(ev.a)
		if !ok {
			continue
		}
		b, ok := p.reg.Get(ev.b)
		if !ok {
			continue
		}
		mid := Mid(a.Pos, b.Pos)
		p.reg.Remove(ev.a)
		p.reg.Remove(ev.b)
		consumed[ev.a] = true
		consumed[ev.b] = true
		p.reg.Spawn(ev.product, mid, Vec3{})
	}

	for _, ev := range red.splits {
		src, ok := p.reg.Get(ev.source)
		if !ok || consumed[ev.source] || src.HasSplit {
			continue
		}
		src.HasSplit = true
		clone := p.reg.Spawn(src.Type, ev.point, Vec3{})
		clone.HasSplit = true // clones never re-split
	}

	for _, id := range red.transmutes {
		c, ok := p.reg.Get(id)
		if !ok || consumed[id] || c.Type == p.rules.Terminal() {
			continue
		}
		p.reg.MutateType(id, p.rules.Terminal())
	}

	for _, id := range red.explodes {
		bomb, ok := p.reg.Get(id)
		if !ok || consumed[id] {
			continue
		}
		bodies := p.physics.QueryNearby(bomb.Pos, p.tun.Physics.BlastRadius)
		Detonate(bomb.Pos, p.tun.Physics.BlastRadius, p.tun.Physics.BlastForce, bodies, p.physics.ApplyImpulse)
		consumed[id] = true
		p.reg.Remove(id)
	}

	for _, id := range red.collects {
		c, ok := p.reg.Get(id)
		if !ok || consumed[id] {
			continue
		}
		def, ok := p.tun.Def(c.Type)
		if !ok {
			continue
		}
		consumed[id] = true
		p.reg.Remove(id)
		p.econ.Collect(def)
	}

	red.reset()
}
