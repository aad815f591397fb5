// Package catalog holds the static deck definition: every card type, its
// copy count, and the capability flags the engine keys card semantics off.
package catalog

import (
	"github.com/tacoeaterman/yepagain/internal/models"
)

// TargetingShape is the selection rule a card's effect requires
type TargetingShape string

const (
	// TargetSelf cards affect only the player who plays them
	TargetSelf TargetingShape = "self"

	// TargetSingleOpponent cards require exactly one opponent target
	TargetSingleOpponent TargetingShape = "single_opponent"

	// TargetAllOpponents cards target every other player automatically
	TargetAllOpponents TargetingShape = "all_opponents"
)

// Entry is one card type in the catalog
type Entry struct {
	// ID identifies the card type
	ID string

	// Name is the display name
	Name string

	// Category groups the card by when it may be played
	Category models.CardCategory

	// Description is the display-only rules text
	Description string

	// Copies is how many physical copies the deck contains
	Copies int

	// EffectCode is the symbolic identifier for the card's real-world
	// effect
	EffectCode string

	// AffectsAllOpponents marks cards whose effect targets every other
	// player rather than a chosen one
	AffectsAllOpponents bool

	// ReflectCapable cards may bounce a pending effect back onto the
	// player who played it
	ReflectCapable bool

	// RedirectCapable cards may reroute a pending effect to a third
	// player
	RedirectCapable bool

	// RestrictedOnLastHole cards cannot be played on the final hole
	RestrictedOnLastHole bool
}

var entries = []Entry{
	// Before Throw
	{
		ID:          "stranger",
		Name:        "The Stranger",
		Category:    models.CardCategoryBeforeThrow,
		Description: "Make an opponent throw their next throw with their offhand.",
		Copies:      4,
		EffectCode:  "force_offhand",
	},
	{
		ID:          "shrink_ray",
		Name:        "Shrink Ray",
		Category:    models.CardCategoryBeforeThrow,
		Description: "Make an opponent throw a mini on their next throw.",
		Copies:      4,
		EffectCode:  "force_mini",
	},
	{
		ID:                  "because_i_said_so",
		Name:                "Because I Said So",
		Category:            models.CardCategoryBeforeThrow,
		Description:         "Make a mando all other players must make. (mando must be on current hole)",
		Copies:              4,
		EffectCode:          "force_mando",
		AffectsAllOpponents: true,
	},
	{
		ID:          "im_you_silly",
		Name:        "I'm You Silly",
		Category:    models.CardCategoryBeforeThrow,
		Description: "Take an opponent's throw for them.",
		Copies:      4,
		EffectCode:  "take_throw",
	},
	{
		ID:          "is_that_what_youre_throwing",
		Name:        "Is That What You're Throwing",
		Category:    models.CardCategoryBeforeThrow,
		Description: "Make an opponent throw a disc of your choosing from yours or their bag.",
		Copies:      4,
		EffectCode:  "force_disc_choice",
	},

	// After Throw
	{
		ID:          "gremlins",
		Name:        "Gremlins",
		Category:    models.CardCategoryAfterThrow,
		Description: "Move an opponent's disc 10 paces in any direction.",
		Copies:      4,
		EffectCode:  "move_opponent_disc",
	},
	{
		ID:          "thats_my_disc",
		Name:        "That's My Disc",
		Category:    models.CardCategoryAfterThrow,
		Description: "Swap lies with an opponent.",
		Copies:      4,
		EffectCode:  "swap_lies",
	},
	{
		ID:                  "merely_a_flesh_wound",
		Name:                "Merely a Flesh Wound",
		Category:            models.CardCategoryAfterThrow,
		Description:         "Make all opponents throw from their knees (both knees must be touching the ground).",
		Copies:              4,
		EffectCode:          "force_knees",
		AffectsAllOpponents: true,
	},
	{
		ID:          "thats_not_fair",
		Name:        "That's Not Fair",
		Category:    models.CardCategoryAfterThrow,
		Description: "Make an opponent rethrow last throw and take worst lie.",
		Copies:      4,
		EffectCode:  "force_rethrow_worst",
	},
	{
		ID:                  "instant_replay",
		Name:                "Instant Replay",
		Category:            models.CardCategoryAfterThrow,
		Description:         "Make all opponents rethrow last throw and take the worst lie.",
		Copies:              4,
		EffectCode:          "force_all_rethrow_worst",
		AffectsAllOpponents: true,
	},

	// Self
	{
		ID:             "im_rubber_you_glue",
		Name:           "I'm Rubber You Glue",
		Category:       models.CardCategorySelf,
		Description:    "Reflects a card played on you back at the person who played it.",
		Copies:         4,
		EffectCode:     "reflect_card",
		ReflectCapable: true,
	},
	{
		ID:              "i_reject_your_reality",
		Name:            "I Reject Your Reality",
		Category:        models.CardCategorySelf,
		Description:     "Redirects a card played on you to another opponent.",
		Copies:          4,
		EffectCode:      "redirect_card",
		RedirectCapable: true,
	},
	{
		ID:          "it_was_here_i_swear",
		Name:        "It Was Here I Swear",
		Category:    models.CardCategorySelf,
		Description: "Move your disc 10 paces in any direction.",
		Copies:      4,
		EffectCode:  "move_own_disc",
	},
	{
		ID:          "mulligan",
		Name:        "Mulligan",
		Category:    models.CardCategorySelf,
		Description: "Rethrow last throw and take best lie.",
		Copies:      4,
		EffectCode:  "rethrow_best",
	},
	{
		ID:          "seeing_double",
		Name:        "Seeing Double",
		Category:    models.CardCategorySelf,
		Description: "Putt twice take the best lie.",
		Copies:      4,
		EffectCode:  "double_putt_best",
	},

	// Wild (single copy each)
	{
		ID:                   "jealousy",
		Name:                 "Jealousy",
		Category:             models.CardCategoryWild,
		Description:          "Change scorecards with an opponent of your choosing. If reflected back, trade with last place or +3 if you're last.",
		Copies:               1,
		EffectCode:           "swap_scorecards",
		RestrictedOnLastHole: true,
	},
	{
		ID:                  "i_need_some_space",
		Name:                "I Need Some Space",
		Category:            models.CardCategoryWild,
		Description:         "Move your disc 10 paces closer to the basket and all other players must move theirs 10 further away.",
		Copies:              1,
		EffectCode:          "move_closer_others_further",
		AffectsAllOpponents: true,
	},
	{
		ID:          "hear_it_ring",
		Name:        "Hear It Ring",
		Category:    models.CardCategoryWild,
		Description: "If your disc hits metal it counts as in the basket.",
		Copies:      1,
		EffectCode:  "metal_counts_in",
	},
	{
		ID:                  "whats_par_again",
		Name:                "What's Par Again",
		Category:            models.CardCategoryWild,
		Description:         "Add +1 to par for you and -1 to par for all opponents on this hole.",
		Copies:              1,
		EffectCode:          "adjust_par",
		AffectsAllOpponents: true,
	},
	{
		ID:          "ace_run",
		Name:        "Ace Run",
		Category:    models.CardCategoryWild,
		Description: "Next throw counts as an ace.",
		Copies:      1,
		EffectCode:  "next_throw_ace",
	},
}

// Entries returns every catalog entry in definition order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Get returns the entry with the given ID.
func Get(id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// DeckSize returns the total number of physical cards the catalog
// expands to.
func DeckSize() int {
	total := 0
	for _, e := range entries {
		total += e.Copies
	}
	return total
}

// ShapeFor classifies an entry's targeting shape. The classification is
// total: every entry resolves to exactly one shape.
func ShapeFor(e Entry) TargetingShape {
	if e.Category == models.CardCategorySelf {
		return TargetSelf
	}
	if e.AffectsAllOpponents {
		return TargetAllOpponents
	}
	return TargetSingleOpponent
}
