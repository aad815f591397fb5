// Package activity composes the human-readable entries that make up a
// session's activity feed.
package activity

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Formatter produces activity entries. A few event kinds carry light
// phrasing variation so the feed reads less mechanically.
type Formatter struct {
	random *rand.Rand
}

// Config for the formatter
type Config struct {
	// Optional seed for testing
	Seed int64
}

// NewFormatter creates a new activity formatter
func NewFormatter(cfg *Config) *Formatter {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Formatter{
		random: rand.New(rand.NewSource(seed)),
	}
}

func (f *Formatter) pick(messages []string) string {
	return messages[f.random.Intn(len(messages))]
}

// SessionCreated describes a new session
func (f *Formatter) SessionCreated(hostName string) string {
	return fmt.Sprintf("%s created the game", hostName)
}

// PlayerJoined describes a player joining the lobby
func (f *Formatter) PlayerJoined(name string) string {
	return f.pick([]string{
		fmt.Sprintf("%s joined the game", name),
		fmt.Sprintf("%s stepped up to the tee", name),
		fmt.Sprintf("%s is in — grab your discs", name),
	})
}

// PlayerLeft describes a player leaving the lobby
func (f *Formatter) PlayerLeft(name string) string {
	return fmt.Sprintf("%s left the game", name)
}

// SessionStarted describes the round beginning
func (f *Formatter) SessionStarted(hostName string) string {
	return fmt.Sprintf("%s started the game — cards are dealt", hostName)
}

// ParSet describes the host locking a hole's par
func (f *Formatter) ParSet(hostName string, hole, par int) string {
	return fmt.Sprintf("%s set par %d for hole %d", hostName, par, hole)
}

// ScoreSubmitted describes a score entry
func (f *Formatter) ScoreSubmitted(name string, hole, strokes, relative int) string {
	return fmt.Sprintf("%s scored %d on hole %d (%s)", name, strokes, hole, FormatRelative(relative))
}

// CardPlayed describes a card play and its targets
func (f *Formatter) CardPlayed(playerName, cardName string, targetNames []string) string {
	if len(targetNames) == 0 {
		return fmt.Sprintf("%s played %s", playerName, cardName)
	}
	return fmt.Sprintf("%s played %s on %s", playerName, cardName, strings.Join(targetNames, ", "))
}

// CardAcknowledged describes a target accepting a card's effect
func (f *Formatter) CardAcknowledged(name, cardName string) string {
	return fmt.Sprintf("%s accepted %s", name, cardName)
}

// CardReflected describes a card bouncing back at its player
func (f *Formatter) CardReflected(name, cardName, originalPlayer string) string {
	return f.pick([]string{
		fmt.Sprintf("%s reflected %s back at %s", name, cardName, originalPlayer),
		fmt.Sprintf("%s is rubber, %s is glue — %s bounces back", name, originalPlayer, cardName),
	})
}

// CardRedirected describes a card being rerouted to a third player
func (f *Formatter) CardRedirected(name, cardName, newTarget string) string {
	return fmt.Sprintf("%s redirected %s to %s", name, cardName, newTarget)
}

// HoleAdvanced describes the session moving to a new hole
func (f *Formatter) HoleAdvanced(hole int) string {
	return fmt.Sprintf("Moving on to hole %d", hole)
}

// BonusDrawn describes the last-place bonus draw
func (f *Formatter) BonusDrawn(name string) string {
	return f.pick([]string{
		fmt.Sprintf("%s is in last place and draws a bonus card", name),
		fmt.Sprintf("Pity card! %s draws one for holding last place", name),
	})
}

// SessionFinished describes the end of the round
func (f *Formatter) SessionFinished(winnerName string) string {
	return fmt.Sprintf("That's a wrap — %s takes the round", winnerName)
}

// FormatRelative renders a relative-to-par score the way golfers read
// it: E for even, signed otherwise.
func FormatRelative(relative int) string {
	if relative == 0 {
		return "E"
	}
	if relative > 0 {
		return fmt.Sprintf("+%d", relative)
	}
	return fmt.Sprintf("%d", relative)
}
