// Package tips rotates the short banner lines shown on the login and profile pages.
package tips

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	DeckLogin   = "login"
	DeckProfile = "profile"
)

// DefaultDecks are the lines the pages cycle through.
var DefaultDecks = map[string][]string{
	DeckLogin: {
		"Connect with your hostel community! 🏠",
		"Trade, share, and make friends! 👥",
		"Your marketplace adventure begins here! 🚀",
		"Building connections, one trade at a time! ✨",
		"Where students meet opportunity! 🎯",
	},
	DeckProfile: {
		"Mess ki biryani se zyada spicy profile! 🌶️",
		"Assignment pending, maggie ready 🍜",
		"Jugaad is my middle name 😎",
		"Masti bhi, dosti bhi, aur thoda sa dhandha bhi 😁",
		"Notes becho, Maggie lo, HostelCart Zindabad! 📚",
		"Room 101 se business chal raha hai 🧠",
		"Bunk maar ke trading kar raha hu 😂",
	},
}

type Tip struct {
	Deck  string `json:"deck"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Rotator advances every deck by one line per interval. Reads never block.
type Rotator struct {
	decks    map[string][]string
	interval time.Duration
	ticks    atomic.Uint64
}

func NewRotator(interval time.Duration, decks map[string][]string) *Rotator {
	if interval <= 0 {
		interval = 4 * time.Second
	}
	return &Rotator{decks: decks, interval: interval}
}

// Run ticks until ctx is cancelled.
func (r *Rotator) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.advance()
		}
	}
}

func (r *Rotator) advance() { r.ticks.Add(1) }

// Current returns the line currently showing for deck.
func (r *Rotator) Current(deck string) (Tip, bool) {
	lines := r.decks[deck]
	if len(lines) == 0 {
		return Tip{}, false
	}
	i := int(r.ticks.Load() % uint64(len(lines)))
	return Tip{Deck: deck, Index: i, Text: lines[i]}, true
}
