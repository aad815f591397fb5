// Package deck builds and manages the physical card deck: expansion from
// the catalog, shuffling, dealing, and single draws.
package deck

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tacoeaterman/yepagain/internal/catalog"
	"github.com/tacoeaterman/yepagain/internal/models"
)

// DeckError is a custom error type for deck-related errors
type DeckError string

// Error implements the error interface
func (e DeckError) Error() string {
	return string(e)
}

const (
	// ErrDeckEmpty is returned when drawing from an empty deck; callers
	// treat it as a skip, never as a fatal failure
	ErrDeckEmpty DeckError = "deck is empty"

	// ErrInsufficientCards is returned when the deck cannot cover every
	// hand being dealt
	ErrInsufficientCards DeckError = "not enough cards to deal all hands"
)

// Manager provides deck building and shuffling
type Manager struct {
	random *rand.Rand
}

// Config for the deck manager
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new deck manager
func New(cfg *Config) *Manager {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Manager{
		random: rand.New(source),
	}
}

// Build expands every catalog entry into its physical copies, each with
// a distinct instance ID. The result is deterministic: catalog order,
// copies numbered from 1.
func (m *Manager) Build() []*models.Card {
	cards := make([]*models.Card, 0, catalog.DeckSize())
	for _, entry := range catalog.Entries() {
		for copyIndex := 1; copyIndex <= entry.Copies; copyIndex++ {
			cards = append(cards, &models.Card{
				CatalogID:   entry.ID,
				InstanceID:  fmt.Sprintf("%s#%d", entry.ID, copyIndex),
				Name:        entry.Name,
				Category:    entry.Category,
				Description: entry.Description,
				EffectCode:  entry.EffectCode,
			})
		}
	}
	return cards
}

// Shuffle permutes the deck in place with a uniform Fisher-Yates
// shuffle.
func (m *Manager) Shuffle(cards []*models.Card) {
	m.random.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Deal removes handSize cards per player from the deck tail, one card at
// a time in round-robin order over playerIDs. Returns the hands and the
// remaining deck.
func Deal(playerIDs []string, cards []*models.Card, handSize int) (map[string][]*models.Card, []*models.Card, error) {
	if len(playerIDs)*handSize > len(cards) {
		return nil, cards, ErrInsufficientCards
	}

	hands := make(map[string][]*models.Card, len(playerIDs))
	remaining := cards
	for i := 0; i < handSize; i++ {
		for _, id := range playerIDs {
			var card *models.Card
			var err error
			card, remaining, err = DrawOne(remaining)
			if err != nil {
				return nil, cards, err
			}
			hands[id] = append(hands[id], card)
		}
	}

	return hands, remaining, nil
}

// DrawOne pops one card from the deck tail.
func DrawOne(cards []*models.Card) (*models.Card, []*models.Card, error) {
	if len(cards) == 0 {
		return nil, cards, ErrDeckEmpty
	}
	last := len(cards) - 1
	return cards[last], cards[:last], nil
}
