package game

func (s *GameServiceTestSuite) TestSetPar() {
	session := s.playingSession()
	session.ParLocked[1] = false

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SetPar(s.ctx, &SetParInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
		HoleIndex: 1,
		Par:       4,
	})

	s.Require().NoError(err)
	s.Equal(4, output.Session.Pars[1])
	s.True(output.Session.ParLocked[1])
}

func (s *GameServiceTestSuite) TestSetParNotHost() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.SetPar(s.ctx, &SetParInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		HoleIndex: 1,
		Par:       4,
	})

	s.ErrorIs(err, ErrNotHost)
}

func (s *GameServiceTestSuite) TestSetParNotPlaying() {
	session := s.lobbySession()

	s.expectGetSession(session)

	_, err := s.gameService.SetPar(s.ctx, &SetParInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
		HoleIndex: 0,
		Par:       4,
	})

	s.ErrorIs(err, ErrSessionNotPlaying)
}

func (s *GameServiceTestSuite) TestSetParOutOfRange() {
	for _, par := range []int{0, 11, -1} {
		session := s.playingSession()
		s.expectGetSession(session)

		_, err := s.gameService.SetPar(s.ctx, &SetParInput{
			SessionID: s.testSessionID,
			PlayerID:  s.testHostID,
			HoleIndex: 0,
			Par:       par,
		})

		s.ErrorIs(err, ErrInvalidPar)
	}
}

func (s *GameServiceTestSuite) TestSetParInvalidHole() {
	session := s.playingSession()
	s.expectGetSession(session)

	_, err := s.gameService.SetPar(s.ctx, &SetParInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
		HoleIndex: 9,
		Par:       3,
	})

	s.ErrorIs(err, ErrInvalidHole)
}

func (s *GameServiceTestSuite) TestSetParCorrectionRederivesScores() {
	session := s.playingSession()
	// Par 3 already locked on hole 1 and two players have scored it
	host := session.Players[s.testHostID]
	host.Strokes[0] = 4
	host.HoleScores[0] = 1
	host.TotalScore = 1

	player := session.Players[s.testPlayerID]
	player.Strokes[0] = 3
	player.HoleScores[0] = 0
	player.TotalScore = 0

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SetPar(s.ctx, &SetParInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
		HoleIndex: 0,
		Par:       5,
	})

	s.Require().NoError(err)
	updated := output.Session

	// Raw strokes are untouched; derived scores follow the new par
	s.Equal(4, updated.Players[s.testHostID].Strokes[0])
	s.Equal(-1, updated.Players[s.testHostID].HoleScores[0])
	s.Equal(-1, updated.Players[s.testHostID].TotalScore)

	s.Equal(-2, updated.Players[s.testPlayerID].HoleScores[0])
	s.Equal(-2, updated.Players[s.testPlayerID].TotalScore)

	// A player who has not scored stays untouched
	s.Equal(0, updated.Players[s.testPlayer2ID].Strokes[0])
	s.Equal(0, updated.Players[s.testPlayer2ID].TotalScore)
}

func (s *GameServiceTestSuite) TestSubmitScore() {
	session := s.playingSession()

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		HoleIndex: 0,
		Strokes:   5,
	})

	s.Require().NoError(err)
	s.Equal(2, output.HoleScore)
	s.Equal(2, output.TotalScore)
	s.False(output.HoleComplete)
	s.Equal(1, output.CurrentHole)

	player := output.Session.Players[s.testPlayerID]
	s.Equal(5, player.Strokes[0])
	s.Equal(2, player.HoleScores[0])
}

func (s *GameServiceTestSuite) TestSubmitScoreCompletesHole() {
	session := s.playingSession()
	for _, id := range []string{s.testHostID, s.testPlayerID} {
		session.Players[id].Strokes[0] = 3
		session.Players[id].HoleScores[0] = 0
	}

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayer2ID,
		HoleIndex: 0,
		Strokes:   2,
	})

	s.Require().NoError(err)
	s.True(output.HoleComplete)
	s.Equal(-1, output.HoleScore)
}

func (s *GameServiceTestSuite) TestSubmitScoreResubmissionOverwrites() {
	session := s.playingSession()
	player := session.Players[s.testPlayerID]
	player.Strokes[0] = 6
	player.HoleScores[0] = 3
	player.TotalScore = 3

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		HoleIndex: 0,
		Strokes:   4,
	})

	s.Require().NoError(err)
	s.Equal(1, output.HoleScore)
	s.Equal(1, output.TotalScore)
	s.Equal(4, output.Session.Players[s.testPlayerID].Strokes[0])
}

func (s *GameServiceTestSuite) TestSubmitScoreParNotSet() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		HoleIndex: 1,
		Strokes:   3,
	})

	s.ErrorIs(err, ErrParNotSet)
}

func (s *GameServiceTestSuite) TestSubmitScoreOutOfRange() {
	for _, strokes := range []int{0, 31, -2} {
		session := s.playingSession()
		s.expectGetSession(session)

		_, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
			SessionID: s.testSessionID,
			PlayerID:  s.testPlayerID,
			HoleIndex: 0,
			Strokes:   strokes,
		})

		s.ErrorIs(err, ErrInvalidScore)
	}
}

func (s *GameServiceTestSuite) TestSubmitScoreNotInSession() {
	session := s.playingSession()

	s.expectGetSession(session)

	_, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  "stranger-id",
		HoleIndex: 0,
		Strokes:   3,
	})

	s.ErrorIs(err, ErrPlayerNotInSession)
}

func (s *GameServiceTestSuite) TestSubmitScoreNotPlaying() {
	session := s.lobbySession()

	s.expectGetSession(session)

	_, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testHostID,
		HoleIndex: 0,
		Strokes:   3,
	})

	s.ErrorIs(err, ErrSessionNotPlaying)
}

func (s *GameServiceTestSuite) TestSubmitScorePastHoleAllowed() {
	// Scores can be corrected on earlier holes as long as par is locked
	session := s.playingSession()
	session.CurrentHole = 3
	session.ParLocked[0] = true

	s.expectGetSession(session)
	s.expectSave()

	output, err := s.gameService.SubmitScore(s.ctx, &SubmitScoreInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testPlayerID,
		HoleIndex: 0,
		Strokes:   3,
	})

	s.Require().NoError(err)
	s.Equal(0, output.HoleScore)
	s.Equal(3, output.CurrentHole)
}
