package crypto1

// ValidNonceFunc reports whether a candidate tag nonce satisfies whatever
// criterion a caller's attack is searching for (a parity pattern, a
// distance from a known nonce, and so on).
type ValidNonceFunc func(nonce uint32) bool

// NonceIterator lazily walks the tag PRNG's cycle starting from a seed,
// one candidate nonce at a time, and can be rewound to a new seed without
// reallocating. It replaces the reference firmware's FOREACH_VALID_NONCE
// macro, which expanded a scan loop inline at every call site; here the
// scan state is explicit and the loop lives in one place.
type NonceIterator struct {
	cur   uint32
	count uint32
}

// NewNonceIterator starts an iterator at seed.
func NewNonceIterator(seed uint32) *NonceIterator {
	it := &NonceIterator{}
	it.Reset(seed)
	return it
}

// Reset rewinds the iterator to start from seed again.
func (it *NonceIterator) Reset(seed uint32) {
	it.cur = byteSwap32(seed)
	it.count = 0
}

// Next returns the next candidate nonce and true, or false once every
// distinct value the 16-bit-period tag PRNG can reach from the original
// seed has been produced.
func (it *NonceIterator) Next() (uint32, bool) {
	if it.count >= 1<<16 {
		return 0, false
	}
	val := byteSwap32(it.cur)
	it.cur = prngSuccessor1(it.cur)
	it.count++
	return val, true
}

// SkipBlock advances the iterator by 16 clocks without producing the
// intermediate 15 candidates, for callers that know in advance a run of
// nonces cannot satisfy their predicate (for instance because nested
// authentication only ever observes nonces 16 clocks apart). It reports
// whether the iterator still has candidates left afterward.
func (it *NonceIterator) SkipBlock() bool {
	if it.count+16 > 1<<16 {
		it.count = 1 << 16
		return false
	}
	it.cur = prngSuccessor16(it.cur)
	it.count += 16
	return true
}

// FindValidNonces drains it, collecting every candidate for which valid
// returns true, up to limit results (0 means unlimited). The search is
// restartable: calling it.Reset and invoking FindValidNonces again starts
// over from the new seed.
func FindValidNonces(it *NonceIterator, valid ValidNonceFunc, limit int) []uint32 {
	var found []uint32
	for {
		n, ok := it.Next()
		if !ok {
			return found
		}
		if valid(n) {
			found = append(found, n)
			if limit > 0 && len(found) >= limit {
				return found
			}
		}
	}
}

// ValidNonceIterator walks the full 16-bit seed space of the tag PRNG,
// testing each seed against a filter/width parity pattern and yielding
// the nonce 16 clocks past every seed that passes. It is the reshaping
// into an explicit, restartable iterator of the reference firmware's
// FOREACH_VALID_NONCE macro (mf1_crapto1.h), which expands this exact
// scan inline at each of its call sites.
//
// For seed n, the candidate nonce is always PRNGSuccessor(n, 16) — fixed
// before the test below ever runs, not itself affected by the test's own
// clocking. The test walks a second, scratch copy of the PRNG state
// starting at n across width bit positions, most significant first: at
// bit i it checks whether bit i of filter disagrees with the even-parity
// of the scratch state's bits 0 and 8-15 (the 0xFF01 mask, which isolates
// the low data bit and the byte MIFARE transmits alongside it); any
// disagreement rejects the seed outright. Otherwise, unless this was the
// last bit, the scratch state advances by 8 clocks — or 48 at bit index
// 7, the point in the trace where nested authentication's timing
// quantization skips an extra 40 clocks — and the walk continues.
type ValidNonceIterator struct {
	filter uint32
	width  int
	n      uint32
}

// NewValidNonceIterator starts an iterator scanning seeds from 0 against
// the given filter pattern, width bits wide.
func NewValidNonceIterator(filter uint32, width int) *ValidNonceIterator {
	return &ValidNonceIterator{filter: filter, width: width}
}

// Reset rewinds the iterator to scan from seed 0 again.
func (it *ValidNonceIterator) Reset() {
	it.n = 0
}

// Next returns the next nonce consistent with the filter/width pattern
// and true, or false once every seed in the 16-bit PRNG state space has
// been tried.
func (it *ValidNonceIterator) Next() (uint32, bool) {
	for it.n < 1<<16 {
		n := it.n
		it.n++

		if it.consistent(n) {
			return PRNGSuccessor(n, 16), true
		}
	}
	return 0, false
}

func (it *ValidNonceIterator) consistent(seed uint32) bool {
	m := seed
	for i := it.width - 1; i >= 0; i-- {
		if bit(it.filter, uint(i)) != evenParity32(m&0xFF01) {
			return false
		}
		if i > 0 {
			step := uint32(8)
			if i == 7 {
				step = 48
			}
			m = PRNGSuccessor(m, step)
		}
	}
	return true
}

// FindFilterConsistentNonces drains it, collecting up to limit results (0
// means unlimited). The search is restartable: calling it.Reset and
// invoking FindFilterConsistentNonces again rescans from seed 0.
func FindFilterConsistentNonces(it *ValidNonceIterator, limit int) []uint32 {
	var found []uint32
	for {
		n, ok := it.Next()
		if !ok {
			return found
		}
		found = append(found, n)
		if limit > 0 && len(found) >= limit {
			return found
		}
	}
}
