package game

import (
	"github.com/tacoeaterman/yepagain/internal/models"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
	"go.uber.org/mock/gomock"
)

// scoreHole records strokes directly for every player so progression
// tests can set up completed holes without going through SubmitScore.
func (s *GameServiceTestSuite) scoreHole(session *models.Session, holeIndex int, strokes map[string]int) {
	session.ParLocked[holeIndex] = true
	for id, count := range strokes {
		player := session.Players[id]
		player.Strokes[holeIndex] = count
		player.HoleScores[holeIndex] = count - session.Pars[holeIndex]
		recomputeTotal(player)
	}
}

func (s *GameServiceTestSuite) expectGuardedSave(expectedHole int) {
	s.mockSessionRepo.EXPECT().
		SaveSessionGuarded(s.ctx, gomock.Any()).
		DoAndReturn(func(_ any, input *sessionRepo.SaveSessionGuardedInput) error {
			s.Equal(expectedHole, input.ExpectedCurrentHole)
			return nil
		})
}

func (s *GameServiceTestSuite) TestAdvanceHole() {
	session := s.playingSession()
	s.scoreHole(session, 0, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  4,
		s.testPlayer2ID: 5,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(1)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
	})

	s.Require().NoError(err)
	s.True(output.Advanced)
	s.False(output.Finished)
	s.Equal(2, output.Session.CurrentHole)
	s.Equal(models.SessionPhasePlaying, output.Session.Phase)
	s.Empty(output.BonusPlayerID)
}

func (s *GameServiceTestSuite) TestAdvanceHoleIncomplete() {
	session := s.playingSession()
	s.scoreHole(session, 0, map[string]int{
		s.testHostID:   3,
		s.testPlayerID: 4,
		// player 2 has not scored
	})

	s.expectGetSession(session)

	_, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.ErrorIs(err, ErrHoleNotComplete)
}

func (s *GameServiceTestSuite) TestAdvanceHoleNonParticipant() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  "stranger-id",
	})

	s.ErrorIs(err, ErrPlayerNotInSession)
}

func (s *GameServiceTestSuite) TestAdvanceHoleStaleExpectation() {
	session := s.playingSession()
	session.CurrentHole = 3

	s.expectGetSession(session)

	// A caller who saw hole 2 arrives after the advance already happened
	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID:    s.testSessionID,
		PlayerID:     s.testPlayerID,
		ExpectedHole: 2,
	})

	s.Require().NoError(err)
	s.False(output.Advanced)
	s.Equal(3, output.Session.CurrentHole)
}

func (s *GameServiceTestSuite) TestAdvanceHoleLosesGuardedWrite() {
	session := s.playingSession()
	s.scoreHole(session, 0, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  3,
		s.testPlayer2ID: 3,
	})

	s.expectGetSession(session)
	s.mockSessionRepo.EXPECT().
		SaveSessionGuarded(s.ctx, gomock.Any()).
		Return(sessionRepo.ErrStaleSession)

	// The winner's write is already stored; the loser re-reads it
	advanced := s.playingSession()
	advanced.CurrentHole = 2
	s.expectGetSession(advanced)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayer2ID,
	})

	s.Require().NoError(err)
	s.False(output.Advanced)
	s.Equal(2, output.Session.CurrentHole)
}

func (s *GameServiceTestSuite) TestAdvanceHoleFinishesSession() {
	session := s.playingSession()
	session.CurrentHole = 9
	s.scoreHole(session, 8, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  2,
		s.testPlayer2ID: 4,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(9)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	s.True(output.Advanced)
	s.True(output.Finished)
	s.Equal(models.SessionPhaseFinished, output.Session.Phase)
	// CurrentHole never passes TotalHoles
	s.Equal(9, output.Session.CurrentHole)
}

func (s *GameServiceTestSuite) TestAdvanceHoleAlreadyFinished() {
	session := s.playingSession()
	session.Phase = models.SessionPhaseFinished
	session.CurrentHole = 9

	s.expectGetSession(session)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	s.False(output.Advanced)
	s.True(output.Finished)
}

func (s *GameServiceTestSuite) TestAdvanceHoleBonusDraw() {
	session := s.playingSession()
	session.CurrentHole = 3
	session.Deck = []*models.Card{makeCard(s.T(), "mulligan", 1)}
	session.ParLocked[2] = true
	s.scoreHole(session, 2, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  6, // highest total, last place
		s.testPlayer2ID: 4,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(3)

	// Moving to hole 4 triggers the every-third-hole bonus
	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	s.True(output.Advanced)
	s.Equal(4, output.Session.CurrentHole)
	s.Equal(s.testPlayerID, output.BonusPlayerID)
	s.Require().NotNil(output.BonusCard)
	s.Equal("mulligan#1", output.BonusCard.InstanceID)

	// Card landed in the last-place player's hand, deck is now empty
	s.Len(output.Session.Players[s.testPlayerID].Hand, 1)
	s.Empty(output.Session.Deck)
}

func (s *GameServiceTestSuite) TestAdvanceHoleBonusTieBreaksOnPlayerID() {
	session := s.playingSession()
	session.CurrentHole = 3
	session.Deck = []*models.Card{makeCard(s.T(), "mulligan", 1)}
	s.scoreHole(session, 2, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  6,
		s.testPlayer2ID: 6,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(3)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	// "player-2-id" sorts before "player-id", so it wins the tie
	s.Equal(s.testPlayer2ID, output.BonusPlayerID)
}

func (s *GameServiceTestSuite) TestAdvanceHoleBonusSkippedOnEmptyDeck() {
	session := s.playingSession()
	session.CurrentHole = 3
	session.Deck = nil
	s.scoreHole(session, 2, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  6,
		s.testPlayer2ID: 4,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(3)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	s.True(output.Advanced)
	s.Empty(output.BonusPlayerID)
	s.Nil(output.BonusCard)
}

func (s *GameServiceTestSuite) TestAdvanceHoleNoBonusOffCadence() {
	session := s.playingSession()
	session.CurrentHole = 2
	session.Deck = []*models.Card{makeCard(s.T(), "mulligan", 1)}
	session.ParLocked[1] = true
	s.scoreHole(session, 1, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  6,
		s.testPlayer2ID: 4,
	})

	s.expectGetSession(session)
	s.expectGuardedSave(2)

	output, err := s.gameService.AdvanceHole(s.ctx, &AdvanceHoleInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
	})

	s.Require().NoError(err)
	s.Equal(3, output.Session.CurrentHole)
	s.Empty(output.BonusPlayerID)
	s.Len(session.Deck, 1)
}

func (s *GameServiceTestSuite) TestGetLeaderboard() {
	session := s.playingSession()
	s.scoreHole(session, 0, map[string]int{
		s.testHostID:    4,
		s.testPlayerID:  2,
		s.testPlayer2ID: 3,
	})

	s.expectGetSession(session)

	output, err := s.gameService.GetLeaderboard(s.ctx, &GetLeaderboardInput{SessionID: s.testSessionID})

	s.Require().NoError(err)
	s.Require().Len(output.Entries, 3)

	s.Equal(s.testPlayerID, output.Entries[0].PlayerID)
	s.Equal(-1, output.Entries[0].TotalScore)
	s.Equal(1, output.Entries[0].Position)
	s.Equal(1, output.Entries[0].HolesScored)

	s.Equal(s.testPlayer2ID, output.Entries[1].PlayerID)
	s.Equal(2, output.Entries[1].Position)

	s.Equal(s.testHostID, output.Entries[2].PlayerID)
	s.Equal(3, output.Entries[2].Position)
}

func (s *GameServiceTestSuite) TestGetLeaderboardTieBreaksOnJoinOrder() {
	session := s.playingSession()
	s.scoreHole(session, 0, map[string]int{
		s.testHostID:    3,
		s.testPlayerID:  3,
		s.testPlayer2ID: 3,
	})

	s.expectGetSession(session)

	output, err := s.gameService.GetLeaderboard(s.ctx, &GetLeaderboardInput{SessionID: s.testSessionID})

	s.Require().NoError(err)
	// All even; the earlier joiner ranks higher
	s.Equal(s.testHostID, output.Entries[0].PlayerID)
	s.Equal(s.testPlayerID, output.Entries[1].PlayerID)
	s.Equal(s.testPlayer2ID, output.Entries[2].PlayerID)
}
