package engine

import "math/big"

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigSeven = big.NewInt(7)
)

// TermBound is the largest number of terminal diagrams a diagram with t
// T-vertices can produce: 7 per group of six, 2 per remaining pair and 2 for
// a leftover single.
//
//	TermBound(t) = 7^(t/6) · 2^((t%6)/2) · (2 if t%6 is odd)
func TermBound(t int) *big.Int {
	if t <= 0 {
		return new(big.Int).Set(bigOne)
	}
	n := new(big.Int).Exp(bigSeven, big.NewInt(int64(t/6)), nil)
	r := t % 6
	n.Lsh(n, uint(r/2))
	if r%2 == 1 {
		n.Mul(n, bigTwo)
	}
	return n
}

// MaxTerms sums TermBound over the T-counts of every pending diagram. It is
// non-increasing as reduction proceeds.
func (d *Decomposer) MaxTerms() *big.Int {
	total := new(big.Int)
	for _, e := range d.frontier.Entries() {
		total.Add(total, TermBound(e.Diagram.TCount()))
	}
	return total
}
