package game

import (
	"context"

	"github.com/tacoeaterman/yepagain/internal/models"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
)

// SetPar locks a hole's par, opening it for score submission. Correcting
// an already-locked par re-derives every stored hole score from the raw
// strokes, so totals stay consistent with the new par.
func (s *service) SetPar(ctx context.Context, input *SetParInput) (*SetParOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsHost(input.PlayerID) {
		return nil, ErrNotHost
	}
	if session.Phase != models.SessionPhasePlaying {
		return nil, ErrSessionNotPlaying
	}
	if input.HoleIndex < 0 || input.HoleIndex >= session.TotalHoles {
		return nil, ErrInvalidHole
	}
	if input.Par < s.minPar || input.Par > s.maxPar {
		return nil, ErrInvalidPar
	}

	session.Pars[input.HoleIndex] = input.Par
	session.ParLocked[input.HoleIndex] = true

	for _, player := range session.Players {
		if !player.HasScored(input.HoleIndex) {
			continue
		}
		player.HoleScores[input.HoleIndex] = player.Strokes[input.HoleIndex] - input.Par
		recomputeTotal(player)
	}

	session.UpdatedAt = s.clock.Now()

	hostName := session.Player(input.PlayerID).DisplayName
	s.appendActivity(ctx, session, s.formatter.ParSet(hostName, input.HoleIndex+1, input.Par))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &SetParOutput{Session: session}, nil
}

// SubmitScore records a player's strokes for a hole. Resubmission
// overwrites; the derived hole score and cached total follow.
func (s *service) SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error) {
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
	if input.HoleIndex < 0 || input.HoleIndex >= session.TotalHoles {
		return nil, ErrInvalidHole
	}
	if input.Strokes < s.minStrokes || input.Strokes > s.maxStrokes {
		return nil, ErrInvalidScore
	}
	if !session.ParLocked[input.HoleIndex] {
		return nil, ErrParNotSet
	}

	player.Strokes[input.HoleIndex] = input.Strokes
	player.HoleScores[input.HoleIndex] = input.Strokes - session.Pars[input.HoleIndex]
	recomputeTotal(player)

	session.UpdatedAt = s.clock.Now()

	s.appendActivity(ctx, session, s.formatter.ScoreSubmitted(
		player.DisplayName,
		input.HoleIndex+1,
		input.Strokes,
		player.HoleScores[input.HoleIndex],
	))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &SubmitScoreOutput{
		Session:      session,
		HoleScore:    player.HoleScores[input.HoleIndex],
		TotalScore:   player.TotalScore,
		HoleComplete: allScored(session, session.CurrentHole-1),
		CurrentHole:  session.CurrentHole,
	}, nil
}

// recomputeTotal resets the cached total from the per-hole scores,
// counting only holes the player has actually submitted.
func recomputeTotal(player *models.Player) {
	total := 0
	for i := range player.HoleScores {
		if player.HasScored(i) {
			total += player.HoleScores[i]
		}
	}
	player.TotalScore = total
}

// allScored reports whether every player has submitted strokes for the
// given 0-based hole index.
func allScored(session *models.Session, holeIndex int) bool {
	for _, player := range session.Players {
		if !player.HasScored(holeIndex) {
			return false
		}
	}
	return true
}
