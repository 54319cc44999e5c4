package game

import (
	"sort"
)

type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfKind
	Straight
	Flush
	FullHouse
	FourOfKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// HandRank orders hands by category first, then by Ranks compared
// highest-first. Ranks holds only the values that decide ties for the
// category (quad rank then kicker, both pair ranks then kicker, ...).
type HandRank struct {
	Category Category
	Ranks    []int
}

// Compare returns 1 if h beats o, -1 if o beats h and 0 on a tie.
func (h HandRank) Compare(o HandRank) int {
	if h.Category != o.Category {
		if h.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.Ranks) && i < len(o.Ranks); i++ {
		if h.Ranks[i] != o.Ranks[i] {
			if h.Ranks[i] > o.Ranks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func (h HandRank) BetterThan(o HandRank) bool {
	return h.Compare(o) > 0
}

// Evaluate7 scores the best five card hand out of seven cards by dropping
// every pair of cards in turn (21 subsets).
func Evaluate7(cards []Card) HandRank {
	if len(cards) != 7 {
		return EvaluateBest(cards)
	}
	var best HandRank
	found := false
	five := make([]Card, 0, 5)
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			five = five[:0]
			for k, c := range cards {
				if k != i && k != j {
					five = append(five, c)
				}
			}
			h := eval5(five)
			if !found || h.BetterThan(best) {
				best = h
				found = true
			}
		}
	}
	return best
}

// EvaluateBest handles any card count from five to seven.
func EvaluateBest(cards []Card) HandRank {
	if len(cards) < 5 {
		return HandRank{Category: HighCard, Ranks: sortedRanks(cards)}
	}
	var best HandRank
	found := false
	idx := make([]int, 5)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			five := []Card{cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]]}
			h := eval5(five)
			if !found || h.BetterThan(best) {
				best = h
				found = true
			}
			return
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			idx[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return best
}

func eval5(cards []Card) HandRank {
	var counts [13]int
	var suits [4]int
	for _, c := range cards {
		counts[c.Rank]++
		suits[c.Suit]++
	}
	ranks := sortedRanks(cards)

	isFlush := false
	for _, n := range suits {
		if n == 5 {
			isFlush = true
		}
	}
	isStraight, high := straightHigh(counts)
	if isFlush && isStraight {
		if high == int(Ace) {
			return HandRank{Category: RoyalFlush, Ranks: []int{high}}
		}
		return HandRank{Category: StraightFlush, Ranks: []int{high}}
	}

	type rc struct {
		rank  int
		count int
	}
	groups := make([]rc, 0, 5)
	for r := int(Ace); r >= 0; r-- {
		if counts[r] > 0 {
			groups = append(groups, rc{rank: r, count: counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfKind, Ranks: []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Ranks: []int{groups[0].rank, groups[1].rank}}
	case isFlush:
		return HandRank{Category: Flush, Ranks: ranks}
	case isStraight:
		return HandRank{Category: Straight, Ranks: []int{high}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfKind, Ranks: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Ranks: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return HandRank{Category: Pair, Ranks: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	}
	return HandRank{Category: HighCard, Ranks: ranks}
}

// straightHigh reports the top rank of a five card straight. The wheel
// (A-2-3-4-5) tops out at the five.
func straightHigh(counts [13]int) (bool, int) {
	run := 0
	for r := int(Ace); r >= 0; r-- {
		if counts[r] == 0 {
			run = 0
			continue
		}
		run++
		if run == 5 {
			return true, r + 4
		}
	}
	if counts[Ace] > 0 && counts[Two] > 0 && counts[Three] > 0 && counts[Four] > 0 && counts[Five] > 0 {
		return true, int(Five)
	}
	return false, 0
}

func sortedRanks(cards []Card) []int {
	out := make([]int, 0, len(cards))
	for _, c := range cards {
		out = append(out, int(c.Rank))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
