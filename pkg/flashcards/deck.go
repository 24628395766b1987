package flashcards

import (
	"errors"
	"fmt"
)

// NothingToReview is shown in place of a card when the deck is empty.
const NothingToReview = "No flashcards for today. Add one first!"

var ErrNoCards = errors.New("no flashcards to review")

// Deck walks through a fixed list of cards. Progress is not persisted and
// every move shows the front of the new card.
type Deck struct {
	cards       []Flashcard
	index       int
	showingBack bool
}

func NewDeck(cards []Flashcard) *Deck {
	d := &Deck{cards: cards, index: -1}
	if len(cards) > 0 {
		d.index = 0
	}
	return d
}

func (d *Deck) Empty() bool { return len(d.cards) == 0 }

func (d *Deck) Len() int { return len(d.cards) }

// Index is the zero-based position of the current card, or -1 when empty.
func (d *Deck) Index() int { return d.index }

func (d *Deck) ShowingBack() bool { return d.showingBack }

func (d *Deck) Current() (Flashcard, error) {
	if d.Empty() {
		return Flashcard{}, ErrNoCards
	}
	return d.cards[d.index], nil
}

// Face is the text currently visible.
func (d *Deck) Face() string {
	card, err := d.Current()
	if err != nil {
		return NothingToReview
	}
	if d.showingBack {
		return card.Back
	}
	return card.Front
}

// Flip toggles between front and back. It does nothing on an empty deck.
func (d *Deck) Flip() {
	if d.Empty() {
		return
	}
	d.showingBack = !d.showingBack
}

func (d *Deck) HasNext() bool { return !d.Empty() && d.index < len(d.cards)-1 }

func (d *Deck) HasPrev() bool { return !d.Empty() && d.index > 0 }

// Next moves forward one card; it reports false at the end of the deck.
func (d *Deck) Next() bool {
	if !d.HasNext() {
		return false
	}
	d.show(d.index + 1)
	return true
}

// Prev moves back one card; it reports false at the start of the deck.
func (d *Deck) Prev() bool {
	if !d.HasPrev() {
		return false
	}
	d.show(d.index - 1)
	return true
}

// Position renders "n/total", "0/0" for an empty deck.
func (d *Deck) Position() string {
	if d.Empty() {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", d.index+1, len(d.cards))
}

func (d *Deck) show(index int) {
	d.index = index
	d.showingBack = false
}
