package engine

import "strconv"

// Suit identifies one of the three suits shared by number and dragon cards.
type Suit uint8

const (
	Black Suit = iota
	Green
	Red
)

// NumSuits is the number of suits in the deck.
const NumSuits = 3

// Suits lists all suits in canonical order.
var Suits = [NumSuits]Suit{Black, Green, Red}

func (s Suit) String() string {
	switch s {
	case Black:
		return "black"
	case Green:
		return "green"
	case Red:
		return "red"
	}
	return "suit(" + strconv.Itoa(int(s)) + ")"
}

// Kind discriminates the card variants.
type Kind uint8

const (
	kindNone Kind = iota // zero value, "no card"
	KindNumber
	KindDragon
	KindJoker
)

// Card is one card of the 40-card deck: a number card (suit and rank
// 1..9), a dragon (suit only, four per suit), or the single joker.
// The zero Card means "no card here" and is never part of the deck.
type Card struct {
	Kind Kind
	Suit Suit
	Rank uint8
}

// Number returns the number card of the given suit and rank.
func Number(suit Suit, rank uint8) Card {
	return Card{Kind: KindNumber, Suit: suit, Rank: rank}
}

// Dragon returns a dragon card of the given suit.
func Dragon(suit Suit) Card {
	return Card{Kind: KindDragon, Suit: suit}
}

// Joker returns the joker card.
func Joker() Card {
	return Card{Kind: KindJoker}
}

// IsNone reports whether c is the "no card" zero value.
func (c Card) IsNone() bool {
	return c.Kind == kindNone
}

func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return suitLetter(c.Suit) + strconv.Itoa(int(c.Rank))
	case KindDragon:
		return suitLetter(c.Suit) + "D"
	case KindJoker:
		return "J"
	}
	return "--"
}

func suitLetter(s Suit) string {
	switch s {
	case Black:
		return "b"
	case Green:
		return "g"
	case Red:
		return "r"
	}
	return "?"
}

// canStack reports whether over may sit on under in a column run:
// both number cards, descending by one, different suits.
func canStack(under, over Card) bool {
	return under.Kind == KindNumber && over.Kind == KindNumber &&
		under.Suit != over.Suit && under.Rank == over.Rank+1
}

// packed returns a one-byte encoding of the card, unique per identity.
// The zero card packs to 0; deck cards pack to 1..31.
func (c Card) packed() byte {
	switch c.Kind {
	case KindNumber:
		return 1 + byte(c.Suit)*9 + c.Rank - 1
	case KindDragon:
		return 28 + byte(c.Suit)
	case KindJoker:
		return 31
	}
	return 0
}

// DeckSize is the fixed number of cards in play.
const DeckSize = 40

// Deck returns the full 40-card deck in canonical order: per suit four
// dragons then ranks 1..9, with the joker last.
func Deck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for i := 0; i < DragonsPerSuit; i++ {
			deck = append(deck, Dragon(suit))
		}
		for rank := uint8(1); rank <= MaxRank; rank++ {
			deck = append(deck, Number(suit, rank))
		}
	}
	deck = append(deck, Joker())
	return deck
}

const (
	// MaxRank is the highest number card rank; a goal pile at MaxRank
	// is complete.
	MaxRank = 9
	// DragonsPerSuit is how many dragon cards each suit has.
	DragonsPerSuit = 4
)
