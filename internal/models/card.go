package models

// CardCategory groups cards by when they may be played during a hole
type CardCategory string

const (
	// CardCategoryBeforeThrow cards are played before a target throws
	CardCategoryBeforeThrow CardCategory = "before_throw"

	// CardCategoryAfterThrow cards are played after a target has thrown
	CardCategoryAfterThrow CardCategory = "after_throw"

	// CardCategorySelf cards affect only the player who plays them
	CardCategorySelf CardCategory = "self"

	// CardCategoryWild cards are single-copy cards with bespoke effects
	CardCategoryWild CardCategory = "wild"
)

// Card is one physical copy drawn from the catalog
type Card struct {
	// CatalogID identifies the card type in the catalog
	CatalogID string

	// InstanceID is unique per physical copy, e.g. "gremlins#2"
	InstanceID string

	// Name is the display name of the card
	Name string

	// Category determines the card's default targeting shape
	Category CardCategory

	// Description is the display-only rules text
	Description string

	// EffectCode is the symbolic effect identifier consumed by the
	// physical-gameplay adjudication; the engine only delivers it
	EffectCode string
}
