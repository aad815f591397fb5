package game

import (
	"context"

	"github.com/tacoeaterman/yepagain/internal/catalog"
	"github.com/tacoeaterman/yepagain/internal/models"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
)

// PlayCard plays a card from a player's hand. The card moves to the
// discard pile and a pending effect is enqueued for every resolved
// target; self-targeted cards resolve immediately with no effects.
func (s *service) PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player := session.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInSession
	}
	if session.Phase != models.SessionPhasePlaying {
		return nil, ErrSessionNotPlaying
	}

	card := findCardInHand(player, input.CardInstanceID)
	if card == nil {
		return nil, ErrCardNotInHand
	}

	entry, ok := catalog.Get(card.CatalogID)
	if !ok {
		return nil, ErrUnknownCard
	}
	if entry.RestrictedOnLastHole && session.CurrentHole == session.TotalHoles {
		return nil, ErrRestrictedPlay
	}

	var targetIDs []string
	switch catalog.ShapeFor(entry) {
	case catalog.TargetSelf:
		// No acknowledgment cycle; the play is its own resolution.
	case catalog.TargetSingleOpponent:
		if len(input.TargetPlayerIDs) != 1 {
			return nil, ErrInvalidTargetCount
		}
		targetID := input.TargetPlayerIDs[0]
		if targetID == input.PlayerID || session.Player(targetID) == nil {
			return nil, ErrInvalidTarget
		}
		targetIDs = []string{targetID}
	case catalog.TargetAllOpponents:
		targetIDs = opponentIDsInJoinOrder(session, input.PlayerID)
	}

	removeCardFromHand(player, input.CardInstanceID)
	session.Discard = append(session.Discard, card)

	now := s.clock.Now()
	effects := make([]*models.PendingEffect, 0, len(targetIDs))
	targetNames := make([]string, 0, len(targetIDs))
	for _, targetID := range targetIDs {
		effect := &models.PendingEffect{
			ID:           s.uuidGenerator.NewUUID(),
			Card:         card,
			PlayedByID:   player.ID,
			PlayedByName: player.DisplayName,
			TargetID:     targetID,
			CreatedAt:    now,
		}
		target := session.Player(targetID)
		target.PendingAcknowledgments = append(target.PendingAcknowledgments, effect)
		effects = append(effects, effect)
		targetNames = append(targetNames, target.DisplayName)
	}

	session.UpdatedAt = now

	s.appendActivity(ctx, session, s.formatter.CardPlayed(player.DisplayName, card.Name, targetNames))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &PlayCardOutput{Session: session, Effects: effects}, nil
}

// AcknowledgeCard accepts a pending effect, removing it from the
// target's queue.
func (s *service) AcknowledgeCard(ctx context.Context, input *AcknowledgeCardInput) (*AcknowledgeCardOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player := session.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInSession
	}

	effect := removePendingEffect(player, input.EffectID)
	if effect == nil {
		return nil, ErrEffectNotFound
	}

	session.UpdatedAt = s.clock.Now()

	s.appendActivity(ctx, session, s.formatter.CardAcknowledged(player.DisplayName, effect.Card.Name))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &AcknowledgeCardOutput{Session: session}, nil
}

// ReflectCard bounces a pending effect back at the player who played it,
// consuming one reflect-capable card from the reflector's hand. The new
// effect is attributed to the reflector.
func (s *service) ReflectCard(ctx context.Context, input *ReflectCardInput) (*ReflectCardOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player := session.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInSession
	}

	effect := findPendingEffect(player, input.EffectID)
	if effect == nil {
		return nil, ErrEffectNotFound
	}

	reaction := consumeCapableCard(player, func(e catalog.Entry) bool { return e.ReflectCapable })
	if reaction == nil {
		return nil, ErrNoReflectCard
	}

	removePendingEffect(player, input.EffectID)
	session.Discard = append(session.Discard, reaction)

	now := s.clock.Now()
	reflected := &models.PendingEffect{
		ID:           s.uuidGenerator.NewUUID(),
		Card:         effect.Card,
		PlayedByID:   player.ID,
		PlayedByName: player.DisplayName,
		TargetID:     effect.PlayedByID,
		CreatedAt:    now,
	}

	originator := session.Player(effect.PlayedByID)
	if originator == nil {
		return nil, ErrInvalidTarget
	}
	originator.PendingAcknowledgments = append(originator.PendingAcknowledgments, reflected)

	session.UpdatedAt = now

	s.appendActivity(ctx, session, s.formatter.CardReflected(player.DisplayName, effect.Card.Name, effect.PlayedByName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &ReflectCardOutput{Session: session, Effect: reflected}, nil
}

// RedirectCard reroutes a pending effect to a third player, consuming one
// redirect-capable card. Attribution stays with the original player, so a
// later reflect still bounces to them.
func (s *service) RedirectCard(ctx context.Context, input *RedirectCardInput) (*RedirectCardOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player := session.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInSession
	}

	if input.NewTargetID == input.PlayerID || session.Player(input.NewTargetID) == nil {
		return nil, ErrInvalidTarget
	}

	effect := findPendingEffect(player, input.EffectID)
	if effect == nil {
		return nil, ErrEffectNotFound
	}

	reaction := consumeCapableCard(player, func(e catalog.Entry) bool { return e.RedirectCapable })
	if reaction == nil {
		return nil, ErrNoRedirectCard
	}

	removePendingEffect(player, input.EffectID)
	session.Discard = append(session.Discard, reaction)

	now := s.clock.Now()
	redirected := &models.PendingEffect{
		ID:           s.uuidGenerator.NewUUID(),
		Card:         effect.Card,
		PlayedByID:   effect.PlayedByID,
		PlayedByName: effect.PlayedByName,
		TargetID:     input.NewTargetID,
		CreatedAt:    now,
	}

	newTarget := session.Player(input.NewTargetID)
	newTarget.PendingAcknowledgments = append(newTarget.PendingAcknowledgments, redirected)

	session.UpdatedAt = now

	s.appendActivity(ctx, session, s.formatter.CardRedirected(player.DisplayName, effect.Card.Name, newTarget.DisplayName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &RedirectCardOutput{Session: session, Effect: redirected}, nil
}

func findCardInHand(player *models.Player, instanceID string) *models.Card {
	for _, card := range player.Hand {
		if card.InstanceID == instanceID {
			return card
		}
	}
	return nil
}

func removeCardFromHand(player *models.Player, instanceID string) *models.Card {
	for i, card := range player.Hand {
		if card.InstanceID == instanceID {
			player.Hand = append(player.Hand[:i], player.Hand[i+1:]...)
			return card
		}
	}
	return nil
}

// consumeCapableCard removes and returns the first card in hand whose
// catalog entry satisfies the predicate, or nil if none does.
func consumeCapableCard(player *models.Player, capable func(catalog.Entry) bool) *models.Card {
	for _, card := range player.Hand {
		entry, ok := catalog.Get(card.CatalogID)
		if ok && capable(entry) {
			return removeCardFromHand(player, card.InstanceID)
		}
	}
	return nil
}

func findPendingEffect(player *models.Player, effectID string) *models.PendingEffect {
	for _, effect := range player.PendingAcknowledgments {
		if effect.ID == effectID {
			return effect
		}
	}
	return nil
}

func removePendingEffect(player *models.Player, effectID string) *models.PendingEffect {
	for i, effect := range player.PendingAcknowledgments {
		if effect.ID == effectID {
			player.PendingAcknowledgments = append(
				player.PendingAcknowledgments[:i],
				player.PendingAcknowledgments[i+1:]...,
			)
			return effect
		}
	}
	return nil
}

// opponentIDsInJoinOrder returns every player except the given one, in
// join order.
func opponentIDsInJoinOrder(session *models.Session, playerID string) []string {
	ids := playerIDsInJoinOrder(session)
	out := make([]string, 0, len(ids)-1)
	for _, id := range ids {
		if id != playerID {
			out = append(out, id)
		}
	}
	return out
}
