package game

import (
	"github.com/tacoeaterman/yepagain/internal/models"
)

func (s *GameServiceTestSuite) TestPlayCardSingleOpponent() {
	session := s.playingSession()
	card := makeCard(s.T(), "gremlins", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)
	s.mockUUID.EXPECT().NewUUID().Return("effect-id")
	s.expectSave()

	output, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:       s.testSessionID,
		PlayerID:        s.testHostID,
		CardInstanceID:  "gremlins#1",
		TargetPlayerIDs: []string{s.testPlayerID},
	})

	s.Require().NoError(err)
	s.Require().Len(output.Effects, 1)

	effect := output.Effects[0]
	s.Equal("effect-id", effect.ID)
	s.Equal(s.testHostID, effect.PlayedByID)
	s.Equal(s.testPlayerID, effect.TargetID)
	s.Equal("gremlins#1", effect.Card.InstanceID)

	// Card moved from hand to discard, effect queued on the target
	updated := output.Session
	s.Empty(updated.Players[s.testHostID].Hand)
	s.Require().Len(updated.Discard, 1)
	s.Equal("gremlins#1", updated.Discard[0].InstanceID)
	s.Require().Len(updated.Players[s.testPlayerID].PendingAcknowledgments, 1)
	s.Equal("effect-id", updated.Players[s.testPlayerID].PendingAcknowledgments[0].ID)
}

func (s *GameServiceTestSuite) TestPlayCardAllOpponents() {
	session := s.playingSession()
	card := makeCard(s.T(), "merely_a_flesh_wound", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)
	s.mockUUID.EXPECT().NewUUID().Return("effect-1")
	s.mockUUID.EXPECT().NewUUID().Return("effect-2")
	s.expectSave()

	output, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:      s.testSessionID,
		PlayerID:       s.testHostID,
		CardInstanceID: "merely_a_flesh_wound#1",
	})

	s.Require().NoError(err)
	s.Require().Len(output.Effects, 2)

	// Both opponents get an effect; the player gets none
	updated := output.Session
	s.Len(updated.Players[s.testPlayerID].PendingAcknowledgments, 1)
	s.Len(updated.Players[s.testPlayer2ID].PendingAcknowledgments, 1)
	s.Empty(updated.Players[s.testHostID].PendingAcknowledgments)
}

func (s *GameServiceTestSuite) TestPlayCardSelf() {
	session := s.playingSession()
	card := makeCard(s.T(), "mulligan", 1)
	session.Players[s.testPlayerID].Hand = []*models.Card{card}

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:      s.testSessionID,
		PlayerID:       s.testPlayerID,
		CardInstanceID: "mulligan#1",
	})

	s.Require().NoError(err)
	s.Empty(output.Effects)
	s.Empty(output.Session.Players[s.testPlayerID].Hand)
	s.Len(output.Session.Discard, 1)
}

func (s *GameServiceTestSuite) TestPlayCardNotInHand() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:       s.testSessionID,
		PlayerID:        s.testHostID,
		CardInstanceID:  "gremlins#1",
		TargetPlayerIDs: []string{s.testPlayerID},
	})

	s.ErrorIs(err, ErrCardNotInHand)
}

func (s *GameServiceTestSuite) TestPlayCardMissingTarget() {
	session := s.playingSession()
	card := makeCard(s.T(), "gremlins", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:      s.testSessionID,
		PlayerID:       s.testHostID,
		CardInstanceID: "gremlins#1",
	})

	s.ErrorIs(err, ErrInvalidTargetCount)
}

func (s *GameServiceTestSuite) TestPlayCardSelfTarget() {
	session := s.playingSession()
	card := makeCard(s.T(), "gremlins", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:       s.testSessionID,
		PlayerID:        s.testHostID,
		CardInstanceID:  "gremlins#1",
		TargetPlayerIDs: []string{s.testHostID},
	})

	s.ErrorIs(err, ErrInvalidTarget)
}

func (s *GameServiceTestSuite) TestPlayCardUnknownTarget() {
	session := s.playingSession()
	card := makeCard(s.T(), "gremlins", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:       s.testSessionID,
		PlayerID:        s.testHostID,
		CardInstanceID:  "gremlins#1",
		TargetPlayerIDs: []string{"stranger-id"},
	})

	s.ErrorIs(err, ErrInvalidTarget)
}

func (s *GameServiceTestSuite) TestPlayCardRestrictedOnLastHole() {
	session := s.playingSession()
	session.CurrentHole = session.TotalHoles
	card := makeCard(s.T(), "jealousy", 1)
	session.Players[s.testHostID].Hand = []*models.Card{card}

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:       s.testSessionID,
		PlayerID:        s.testHostID,
		CardInstanceID:  "jealousy#1",
		TargetPlayerIDs: []string{s.testPlayerID},
	})

	s.ErrorIs(err, ErrRestrictedPlay)
}

func (s *GameServiceTestSuite) TestPlayCardNotPlaying() {
	session := s.lobbySession()

	s.expectGetSession(session)

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SessionID:      s.testSessionID,
		PlayerID:       s.testHostID,
		CardInstanceID: "gremlins#1",
	})

	s.ErrorIs(err, ErrSessionNotPlaying)
}

func (s *GameServiceTestSuite) TestAcknowledgeCard() {
	session := s.playingSession()
	effect := &models.PendingEffect{
		ID:           "effect-id",
		Card:         makeCard(s.T(), "gremlins", 1),
		PlayedByID:   s.testHostID,
		PlayedByName: s.testHostName,
		TargetID:     s.testPlayerID,
		CreatedAt:    s.testTime,
	}
	session.Players[s.testPlayerID].PendingAcknowledgments = []*models.PendingEffect{effect}

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.AcknowledgeCard(s.ctx, &AcknowledgeCardInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		EffectID:  "effect-id",
	})

	s.Require().NoError(err)
	s.Empty(output.Session.Players[s.testPlayerID].PendingAcknowledgments)
}

func (s *GameServiceTestSuite) TestAcknowledgeCardNotFound() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.AcknowledgeCard(s.ctx, &AcknowledgeCardInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		EffectID:  "missing",
	})

	s.ErrorIs(err, ErrEffectNotFound)
}

func (s *GameServiceTestSuite) TestReflectCard() {
	session := s.playingSession()
	effect := &models.PendingEffect{
		ID:           "effect-id",
		Card:         makeCard(s.T(), "gremlins", 1),
		PlayedByID:   s.testHostID,
		PlayedByName: s.testHostName,
		TargetID:     s.testPlayerID,
		CreatedAt:    s.testTime,
	}
	target := session.Players[s.testPlayerID]
	target.PendingAcknowledgments = []*models.PendingEffect{effect}
	target.Hand = []*models.Card{makeCard(s.T(), "im_rubber_you_glue", 1)}

	s.expectGetSession(session)
	s.mockUUID.EXPECT().NewUUID().Return("reflected-id")
	s.expectSave()

	output, err := s.gameService.ReflectCard(s.ctx, &ReflectCardInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		EffectID:  "effect-id",
	})

	s.Require().NoError(err)

	reflected := output.Effect
	s.Equal("reflected-id", reflected.ID)
	s.Equal(s.testHostID, reflected.TargetID)
	// Attribution moves to the reflector, so a second reflect bounces
	// back to them
	s.Equal(s.testPlayerID, reflected.PlayedByID)
	s.Equal("gremlins#1", reflected.Card.InstanceID)

	updated := output.Session
	s.Empty(updated.Players[s.testPlayerID].PendingAcknowledgments)
	s.Empty(updated.Players[s.testPlayerID].Hand)
	s.Require().Len(updated.Players[s.testHostID].PendingAcknowledgments, 1)
	s.Require().Len(updated.Discard, 1)
	s.Equal("im_rubber_you_glue#1", updated.Discard[0].InstanceID)
}

func (s *GameServiceTestSuite) TestReflectCardWithoutReflectCard() {
	session := s.playingSession()
	effect := &models.PendingEffect{
		ID:         "effect-id",
		Card:       makeCard(s.T(), "gremlins", 1),
		PlayedByID: s.testHostID,
		TargetID:   s.testPlayerID,
	}
	target := session.Players[s.testPlayerID]
	target.PendingAcknowledgments = []*models.PendingEffect{effect}
	// A redirect card does not satisfy a reflect
	target.Hand = []*models.Card{makeCard(s.T(), "i_reject_your_reality", 1)}

	s.expectGetSession(session)

	_, err := s.gameService.ReflectCard(s.ctx, &ReflectCardInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		EffectID:  "effect-id",
	})

	s.ErrorIs(err, ErrNoReflectCard)
}

func (s *GameServiceTestSuite) TestRedirectCard() {
	session := s.playingSession()
	effect := &models.PendingEffect{
		ID:           "effect-id",
		Card:         makeCard(s.T(), "gremlins", 1),
		PlayedByID:   s.testHostID,
		PlayedByName: s.testHostName,
		TargetID:     s.testPlayerID,
		CreatedAt:    s.testTime,
	}
	target := session.Players[s.testPlayerID]
	target.PendingAcknowledgments = []*models.PendingEffect{effect}
	target.Hand = []*models.Card{makeCard(s.T(), "i_reject_your_reality", 1)}

	s.expectGetSession(session)
	s.mockUUID.EXPECT().NewUUID().Return("redirected-id")
	s.expectSave()

	output, err := s.gameService.RedirectCard(s.ctx, &RedirectCardInput{
		SessionID:   s.testSessionID,
		PlayerID:    s.testPlayerID,
		EffectID:    "effect-id",
		NewTargetID: s.testPlayer2ID,
	})

	s.Require().NoError(err)

	redirected := output.Effect
	s.Equal(s.testPlayer2ID, redirected.TargetID)
	// Attribution stays with the original player
	s.Equal(s.testHostID, redirected.PlayedByID)
	s.Equal(s.testHostName, redirected.PlayedByName)

	updated := output.Session
	s.Empty(updated.Players[s.testPlayerID].PendingAcknowledgments)
	s.Require().Len(updated.Players[s.testPlayer2ID].PendingAcknowledgments, 1)
}

func (s *GameServiceTestSuite) TestRedirectCardToSelf() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.RedirectCard(s.ctx, &RedirectCardInput{
		SessionID:   s.testSessionID,
		PlayerID:    s.testPlayerID,
		EffectID:    "effect-id",
		NewTargetID: s.testPlayerID,
	})

	s.ErrorIs(err, ErrInvalidTarget)
}

func (s *GameServiceTestSuite) TestRedirectCardWithoutRedirectCard() {
	session := s.playingSession()
	effect := &models.PendingEffect{
		ID:         "effect-id",
		Card:       makeCard(s.T(), "gremlins", 1),
		PlayedByID: s.testHostID,
		TargetID:   s.testPlayerID,
	}
	target := session.Players[s.testPlayerID]
	target.PendingAcknowledgments = []*models.PendingEffect{effect}
	target.Hand = []*models.Card{makeCard(s.T(), "im_rubber_you_glue", 1)}

	s.expectGetSession(session)

	_, err := s.gameService.RedirectCard(s.ctx, &RedirectCardInput{
		SessionID:   s.testSessionID,
		PlayerID:    s.testPlayerID,
		EffectID:    "effect-id",
		NewTargetID: s.testPlayer2ID,
	})

	s.ErrorIs(err, ErrNoRedirectCard)
}
