package game

// typePair is an order-independent key for a pair of coin types.
type typePair struct {
	lo, hi CoinType
}

func makeTypePair(a, b CoinType) typePair {
	if b < a {
		a, b = b, a
	}
	return typePair{a, b}
}

// Rules is the static interaction rule table: which type pairs combine
// into what, and which types belong to the splitter, transmuter and
// explosive collision classes. Types outside every class skip collision
// classification entirely.
type Rules struct {
	combine   map[typePair]CoinType
	reactive  map[CoinType]bool
	splitter  map[CoinType]bool
	explosive map[CoinType]bool

	catalyst CoinType
	base     CoinType
	terminal CoinType
}

// NewRules builds and validates the rule table. A table entry naming an
// unknown coin type is a programming error and panics at startup rather
// than failing per-event at runtime.
func NewRules(combine map[[2]CoinType]CoinType, splitters, explosives []CoinType, catalyst, base, terminal CoinType) *Rules {
	r := &Rules{
		combine:   make(map[typePair]CoinType, len(combine)),
		reactive:  make(map[CoinType]bool, len(combine)*2),
		splitter:  make(map[CoinType]bool, len(splitters)),
		explosive: make(map[CoinType]bool, len(explosives)),
		catalyst:  catalyst,
		base:      base,
		terminal:  terminal,
	}

	check := func(t CoinType) {
		if t >= coinTypeCount {
			panic("rules: unknown coin type " + t.String())
		}
	}

	for pair, product := range combine {
		check(pair[0])
		check(pair[1])
		check(product)
		r.combine[makeTypePair(pair[0], pair[1])] = product
		r.reactive[pair[0]] = true
		r.reactive[pair[1]] = true
	}
	for _, t := range splitters {
		check(t)
		r.splitter[t] = true
	}
	for _, t := range explosives {
		check(t)
		r.explosive[t] = true
	}
	check(catalyst)
	check(base)
	check(terminal)

	return r
}

// DefaultRules is the shipped table: copper and zinc fuse into brass, a
// key opens a chest into a treasure, lucky coins split on pusher contact,
// midas coins transmute pennies into gold, bombs detonate on hard impact.
func DefaultRules() *Rules {
	return NewRules(
		map[[2]CoinType]CoinType{
			{CoinCopper, CoinZinc}: CoinBrass,
			{CoinKey, CoinChest}:   CoinTreasure,
		},
		[]CoinType{CoinLucky},
		[]CoinType{CoinBomb},
		CoinMidas, CoinPenny, CoinGold,
	)
}

// Combine returns the product type for a reactive pair, order-independent.
func (r *Rules) Combine(a, b CoinType) (CoinType, bool) {
	product, ok := r.combine[makeTypePair(a, b)]
	return product, ok
}

// Reactive reports whether the type appears in any combine pair.
func (r *Rules) Reactive(t CoinType) bool { return r.reactive[t] }

// Splitter reports whether the type clones itself on pusher contact.
func (r *Rules) Splitter(t CoinType) bool { return r.splitter[t] }

// Explosive reports whether the type detonates on hard impact.
func (r *Rules) Explosive(t CoinType) bool { return r.explosive[t] }

// Catalyst reports whether the type transmutes base coins on contact.
func (r *Rules) Catalyst(t CoinType) bool { return t == r.catalyst }

// TransmuteBase reports whether the type is a valid transmutation target.
func (r *Rules) TransmuteBase(t CoinType) bool { return t == r.base }

// Terminal returns the type a transmuted coin ends up as.
func (r *Rules) Terminal() CoinType { return r.terminal }

// Participates reports whether the type takes part in any collision class.
// Contacts involving only non-participating types are rejected before any
// further work.
func (r *Rules) Participates(t CoinType) bool {
	return r.reactive[t] || r.splitter[t] || r.explosive[t] || t == r.catalyst
}
