package game

import "sort"

// Pot is one chip-accounting unit of a hand. Contrib records what each seat
// put into this pot; a seat is eligible while it has contributed and has not
// folded. Cap is the per-seat contribution ceiling of a capped (side) pot,
// zero for the uncapped pot.
type Pot struct {
	ID       int
	Amount   int64
	Cap      int64
	Eligible map[int]bool
	Contrib  map[int]int64
}

func NewPot(id int) *Pot {
	return &Pot{ID: id, Eligible: map[int]bool{}, Contrib: map[int]int64{}}
}

// Add credits amount from seat to the pot.
func (p *Pot) Add(seat int, amount int64) {
	if amount <= 0 {
		return
	}
	p.Amount += amount
	p.Contrib[seat] += amount
}

// Remove drops a folded seat from eligibility. Its chips stay in the pot.
func (p *Pot) Remove(seat int) {
	delete(p.Eligible, seat)
}

func (p *Pot) MaxContribution() int64 {
	var m int64
	for _, v := range p.Contrib {
		if v > m {
			m = v
		}
	}
	return m
}

// EligibleSeats returns the eligible seats in ascending order.
func (p *Pot) EligibleSeats() []int {
	out := make([]int, 0, len(p.Eligible))
	for s, ok := range p.Eligible {
		if ok {
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}

// Split divides the amount into n shares. The remainder goes one chip at a
// time to the first shares, so callers order winners before paying out.
func (p *Pot) Split(n int) []int64 {
	return SplitAmount(p.Amount, n)
}

func SplitAmount(amount int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	shares := make([]int64, n)
	base := amount / int64(n)
	rem := amount % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}

// CappedSplit cuts the pot at a per-seat ceiling. The capped pot keeps every
// contribution up to the cap and the eligibility of all contributors; the
// overflow pot holds the excess and is open only to seats that exceeded the
// cap. The receiver is left untouched.
func (p *Pot) CappedSplit(cap int64, overflowID int) (*Pot, *Pot) {
	capped := NewPot(p.ID)
	capped.Cap = cap
	overflow := NewPot(overflowID)
	for seat, amt := range p.Contrib {
		in := amt
		if in > cap {
			in = cap
		}
		capped.Add(seat, in)
		if p.Eligible[seat] {
			capped.Eligible[seat] = true
		}
		if amt > cap {
			overflow.Add(seat, amt-cap)
			if p.Eligible[seat] {
				overflow.Eligible[seat] = true
			}
		}
	}
	return capped, overflow
}
