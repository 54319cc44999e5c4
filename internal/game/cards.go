package game

import (
	"errors"
	"math/rand"
	"strings"
)

type Suit int

type Rank int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const deckSize = 52

const (
	rankChars = "23456789TJQKA"
	suitChars = "schd"
)

var ErrBadCard = errors.New("bad_card")

// Card is an immutable (suit, rank) pair. Rank 0 is a two, 12 is an ace.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	if c.Rank < Two || c.Rank > Ace || c.Suit < Spades || c.Suit > Diamonds {
		return "??"
	}
	return string(rankChars[c.Rank]) + string(suitChars[c.Suit])
}

func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Rank)
}

// ParseCard reads the two character form produced by Card.String, e.g. "Ts" or "7h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Card{}, ErrBadCard
	}
	r := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	su := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if r < 0 || su < 0 {
		return Card{}, ErrBadCard
	}
	return Card{Rank: Rank(r), Suit: Suit(su)}, nil
}

// MustParseCards parses a space separated card list and panics on bad input.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

func FormatCards(cards []Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// Deck holds the cards not yet drawn for a table. Draws pick a random
// remaining card, so the deck never needs an explicit shuffle.
type Deck struct {
	cards []Card
	in    [deckSize]bool
	rng   *rand.Rand
}

func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, deckSize), rng: rng}
	for s := Spades; s <= Diamonds; s++ {
		for r := Two; r <= Ace; r++ {
			c := Card{Rank: r, Suit: s}
			d.cards = append(d.cards, c)
			d.in[c.index()] = true
		}
	}
	return d
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Contains(c Card) bool {
	return d.in[c.index()]
}

// Draw removes and returns a random undrawn card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, invariantf("draw from empty deck")
	}
	i := d.rng.Intn(len(d.cards))
	c := d.cards[i]
	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]
	d.in[c.index()] = false
	return c, nil
}

func (d *Deck) DrawN(n int) ([]Card, error) {
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Draw()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Remove takes specific cards out of the deck. Used to stack a deal in tests.
func (d *Deck) Remove(cards ...Card) error {
	for _, c := range cards {
		if !d.in[c.index()] {
			return invariantf("card %s is not in the deck", c)
		}
		for i := range d.cards {
			if d.cards[i] == c {
				last := len(d.cards) - 1
				d.cards[i] = d.cards[last]
				d.cards = d.cards[:last]
				break
			}
		}
		d.in[c.index()] = false
	}
	return nil
}

// Return puts dealt cards back. Returning a card that is already in the deck
// means it was dealt twice.
func (d *Deck) Return(cards ...Card) error {
	for _, c := range cards {
		if d.in[c.index()] {
			return invariantf("card %s returned twice", c)
		}
		d.in[c.index()] = true
		d.cards = append(d.cards, c)
	}
	return nil
}
