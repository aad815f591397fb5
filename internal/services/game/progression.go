package game

import (
	"context"
	"sort"

	"github.com/tacoeaterman/yepagain/internal/deck"
	"github.com/tacoeaterman/yepagain/internal/models"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
)

// AdvanceHole moves the session to the next hole, or finishes it after
// the terminal hole. Any participant may call it once every player has
// scored the current hole; concurrent callers race on a guarded write and
// exactly one wins, the rest observing a benign no-op.
func (s *service) AdvanceHole(ctx context.Context, input *AdvanceHoleInput) (*AdvanceHoleOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Player(input.PlayerID) == nil {
		return nil, ErrPlayerNotInSession
	}
	if session.Phase == models.SessionPhaseFinished {
		return &AdvanceHoleOutput{Session: session, Finished: true}, nil
	}
	if session.Phase != models.SessionPhasePlaying {
		return nil, ErrSessionNotPlaying
	}

	expected := input.ExpectedHole
	if expected == 0 {
		expected = session.CurrentHole
	}
	if session.CurrentHole != expected {
		// Someone else already advanced past the hole the caller saw.
		return &AdvanceHoleOutput{Session: session}, nil
	}

	holeIndex := session.CurrentHole - 1
	if !allScored(session, holeIndex) {
		return nil, ErrHoleNotComplete
	}

	output := &AdvanceHoleOutput{Session: session, Advanced: true}

	if session.CurrentHole == session.TotalHoles {
		session.Phase = models.SessionPhaseFinished
		output.Finished = true

		winner := winningPlayer(session)
		s.appendActivity(ctx, session, s.formatter.SessionFinished(winner.DisplayName))
	} else {
		session.CurrentHole++
		s.appendActivity(ctx, session, s.formatter.HoleAdvanced(session.CurrentHole))

		if (session.CurrentHole-1)%s.bonusHoleInterval == 0 {
			s.drawBonusCard(ctx, session, output)
		}
	}

	session.UpdatedAt = s.clock.Now()

	err = s.sessionRepo.SaveSessionGuarded(ctx, &sessionRepo.SaveSessionGuardedInput{
		Session:             session,
		ExpectedCurrentHole: expected,
	})
	if err != nil {
		if err == sessionRepo.ErrStaleSession {
			// A concurrent advance beat us to the write; the stored
			// document already reflects the transition.
			current, getErr := s.getSession(ctx, input.SessionID)
			if getErr != nil {
				return nil, getErr
			}
			return &AdvanceHoleOutput{
				Session:  current,
				Finished: current.Phase == models.SessionPhaseFinished,
			}, nil
		}
		return nil, err
	}

	return output, nil
}

// drawBonusCard hands one card from the deck to the player furthest
// behind. An empty deck skips the draw; it never blocks the advance.
func (s *service) drawBonusCard(ctx context.Context, session *models.Session, output *AdvanceHoleOutput) {
	last := lastPlacePlayer(session)
	if last == nil {
		return
	}

	card, remaining, err := deck.DrawOne(session.Deck)
	if err != nil {
		return
	}

	session.Deck = remaining
	last.Hand = append(last.Hand, card)
	output.BonusPlayerID = last.ID
	output.BonusCard = card

	s.appendActivity(ctx, session, s.formatter.BonusDrawn(last.DisplayName))
}

// GetLeaderboard returns the current standings, winner first. Lower
// total scores rank higher; ties break toward the earlier joiner.
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	ids := playerIDsInJoinOrder(session)
	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		player := session.Players[id]
		scored := 0
		for i := range player.Strokes {
			if player.HasScored(i) {
				scored++
			}
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID:    player.ID,
			DisplayName: player.DisplayName,
			TotalScore:  player.TotalScore,
			HolesScored: scored,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore < entries[j].TotalScore
	})
	for i := range entries {
		entries[i].Position = i + 1
	}

	return &GetLeaderboardOutput{Session: session, Entries: entries}, nil
}

// winningPlayer returns the player with the lowest total score, ties
// broken toward the earlier joiner.
func winningPlayer(session *models.Session) *models.Player {
	var winner *models.Player
	for _, id := range playerIDsInJoinOrder(session) {
		player := session.Players[id]
		if winner == nil || player.TotalScore < winner.TotalScore {
			winner = player
		}
	}
	return winner
}

// lastPlacePlayer returns the player with the highest total score, ties
// broken toward the lowest player ID so concurrent advances agree on the
// recipient.
func lastPlacePlayer(session *models.Session) *models.Player {
	ids := make([]string, 0, len(session.Players))
	for id := range session.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var last *models.Player
	for _, id := range ids {
		player := session.Players[id]
		if last == nil || player.TotalScore > last.TotalScore {
			last = player
		}
	}
	return last
}
