// Package game implements the session engine: lifecycle, scoring, card
// play, and hole progression over the session document store.
package game

import (
	"context"
	"log/slog"
	"sort"

	"github.com/tacoeaterman/yepagain/internal/common/clock"
	"github.com/tacoeaterman/yepagain/internal/common/gamecode"
	"github.com/tacoeaterman/yepagain/internal/common/uuid"
	"github.com/tacoeaterman/yepagain/internal/deck"
	"github.com/tacoeaterman/yepagain/internal/models"
	activityRepo "github.com/tacoeaterman/yepagain/internal/repositories/activity"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
	feed "github.com/tacoeaterman/yepagain/internal/services/activity"
)

const (
	defaultMaxPlayers        = 6
	defaultHandSize          = 5
	defaultMinPar            = 1
	defaultMaxPar            = 10
	defaultMinStrokes        = 1
	defaultMaxStrokes        = 30
	defaultBonusHoleInterval = 3
	defaultCodeRetries       = 5
	defaultActivityTail      = 50
	defaultPar               = 3
)

type service struct {
	maxPlayers        int
	handSize          int
	minPar            int
	maxPar            int
	minStrokes        int
	maxStrokes        int
	bonusHoleInterval int
	codeRetries       int
	activityTail      int

	sessionRepo  sessionRepo.Repository
	activityRepo activityRepo.Repository

	deckManager   *deck.Manager
	formatter     *feed.Formatter
	clock         clock.Clock
	uuidGenerator uuid.UUID
	codeGenerator gamecode.Generator
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.ActivityRepo == nil {
		return nil, ErrNilActivityRepo
	}
	if cfg.DeckManager == nil {
		return nil, ErrNilDeckManager
	}
	if cfg.Formatter == nil {
		return nil, ErrNilFormatter
	}

	svc := &service{
		maxPlayers:        cfg.MaxPlayers,
		handSize:          cfg.HandSize,
		minPar:            cfg.MinPar,
		maxPar:            cfg.MaxPar,
		minStrokes:        cfg.MinStrokes,
		maxStrokes:        cfg.MaxStrokes,
		bonusHoleInterval: cfg.BonusHoleInterval,
		codeRetries:       cfg.CodeRetries,
		activityTail:      cfg.ActivityTail,
		sessionRepo:       cfg.SessionRepo,
		activityRepo:      cfg.ActivityRepo,
		deckManager:       cfg.DeckManager,
		formatter:         cfg.Formatter,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		codeGenerator:     cfg.CodeGenerator,
	}

	if svc.maxPlayers == 0 {
		svc.maxPlayers = defaultMaxPlayers
	}
	if svc.handSize == 0 {
		svc.handSize = defaultHandSize
	}
	if svc.minPar == 0 {
		svc.minPar = defaultMinPar
	}
	if svc.maxPar == 0 {
		svc.maxPar = defaultMaxPar
	}
	if svc.minStrokes == 0 {
		svc.minStrokes = defaultMinStrokes
	}
	if svc.maxStrokes == 0 {
		svc.maxStrokes = defaultMaxStrokes
	}
	if svc.bonusHoleInterval == 0 {
		svc.bonusHoleInterval = defaultBonusHoleInterval
	}
	if svc.codeRetries == 0 {
		svc.codeRetries = defaultCodeRetries
	}
	if svc.activityTail == 0 {
		svc.activityTail = defaultActivityTail
	}
	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.New()
	}
	if svc.codeGenerator == nil {
		svc.codeGenerator = gamecode.New(nil)
	}

	return svc, nil
}

// CreateSession creates a new session with a unique join code
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input.TotalHoles < 1 {
		return nil, ErrInvalidHoleCount
	}

	sessionID := s.uuidGenerator.NewUUID()

	// Claiming the code is atomic, so two sessions racing on the same
	// candidate never share it; losers just roll again.
	var code string
	for attempt := 0; attempt < s.codeRetries; attempt++ {
		candidate := s.codeGenerator.NewCode()
		claimed, err := s.sessionRepo.ClaimCode(ctx, &sessionRepo.ClaimCodeInput{
			Code:      candidate,
			SessionID: sessionID,
		})
		if err != nil {
			return nil, err
		}
		if claimed {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, ErrCodeGenerationExhausted
	}

	now := s.clock.Now()

	pars := make([]int, input.TotalHoles)
	for i := range pars {
		pars[i] = defaultPar
	}

	host := &models.Player{
		ID:          input.HostID,
		DisplayName: input.HostName,
		IsHost:      true,
		Strokes:     make([]int, input.TotalHoles),
		HoleScores:  make([]int, input.TotalHoles),
		JoinedAt:    now,
	}

	session := &models.Session{
		ID:          sessionID,
		Code:        code,
		HostID:      input.HostID,
		Name:        input.SessionName,
		TotalHoles:  input.TotalHoles,
		CurrentHole: 1,
		Pars:        pars,
		ParLocked:   make([]bool, input.TotalHoles),
		Phase:       models.SessionPhaseLobby,
		Players: map[string]*models.Player{
			input.HostID: host,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.appendActivity(ctx, session, s.formatter.SessionCreated(input.HostName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{Session: session}, nil
}

// JoinSession adds a player to a lobby via its join code
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	session, err := s.sessionRepo.GetSessionByCode(ctx, &sessionRepo.GetSessionByCodeInput{Code: input.Code})
	if err != nil {
		if err == sessionRepo.ErrSessionNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Phase != models.SessionPhaseLobby {
		return nil, ErrSessionAlreadyStarted
	}
	if session.Player(input.PlayerID) != nil {
		return nil, ErrPlayerAlreadyInSession
	}
	if len(session.Players) >= s.maxPlayers {
		return nil, ErrSessionFull
	}

	now := s.clock.Now()
	session.Players[input.PlayerID] = &models.Player{
		ID:          input.PlayerID,
		DisplayName: input.DisplayName,
		Strokes:     make([]int, session.TotalHoles),
		HoleScores:  make([]int, session.TotalHoles),
		JoinedAt:    now,
	}
	session.UpdatedAt = now

	s.appendActivity(ctx, session, s.formatter.PlayerJoined(input.DisplayName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &JoinSessionOutput{Session: session}, nil
}

// LeaveSession removes a player from a lobby before play starts. When the
// host leaves, the session is disbanded.
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player := session.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInSession
	}
	if session.Phase != models.SessionPhaseLobby {
		return nil, ErrSessionAlreadyStarted
	}

	if session.IsHost(input.PlayerID) {
		if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: session.ID}); err != nil {
			return nil, err
		}
		if err := s.activityRepo.DeleteLog(ctx, &activityRepo.DeleteLogInput{SessionID: session.ID}); err != nil {
			slog.Warn("failed to delete activity log", "session_id", session.ID, "error", err)
		}
		return &LeaveSessionOutput{Disbanded: true}, nil
	}

	delete(session.Players, input.PlayerID)
	session.UpdatedAt = s.clock.Now()

	s.appendActivity(ctx, session, s.formatter.PlayerLeft(player.DisplayName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &LeaveSessionOutput{Session: session}, nil
}

// StartSession deals hands and moves the session into play
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsHost(input.PlayerID) {
		return nil, ErrNotHost
	}
	if session.Phase != models.SessionPhaseLobby {
		return nil, ErrAlreadyStarted
	}

	cards := s.deckManager.Build()
	s.deckManager.Shuffle(cards)

	playerIDs := playerIDsInJoinOrder(session)
	hands, remaining, err := deck.Deal(playerIDs, cards, s.handSize)
	if err != nil {
		if err == deck.ErrInsufficientCards {
			return nil, ErrInsufficientCards
		}
		return nil, err
	}

	for id, hand := range hands {
		session.Players[id].Hand = hand
	}
	session.Deck = remaining
	session.Phase = models.SessionPhasePlaying
	session.CurrentHole = 1
	session.UpdatedAt = s.clock.Now()

	s.appendActivity(ctx, session, s.formatter.SessionStarted(session.Player(input.PlayerID).DisplayName))

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &StartSessionOutput{Session: session}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return &GetSessionOutput{Session: session}, nil
}

// GetSessionByCode retrieves a session by join code
func (s *service) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*GetSessionByCodeOutput, error) {
	session, err := s.sessionRepo.GetSessionByCode(ctx, &sessionRepo.GetSessionByCodeInput{Code: input.Code})
	if err != nil {
		if err == sessionRepo.ErrSessionNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &GetSessionByCodeOutput{Session: session}, nil
}

// GetActivityHistory returns a range of the full activity history
func (s *service) GetActivityHistory(ctx context.Context, input *GetActivityHistoryInput) (*GetActivityHistoryOutput, error) {
	stop := input.Stop
	if input.Start == 0 && stop == 0 {
		stop = -1
	}

	out, err := s.activityRepo.GetEntries(ctx, &activityRepo.GetEntriesInput{
		SessionID: input.SessionID,
		Start:     input.Start,
		Stop:      stop,
	})
	if err != nil {
		return nil, err
	}

	return &GetActivityHistoryOutput{Entries: out.Entries}, nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if err == sessionRepo.ErrSessionNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// appendActivity records a feed entry both on the session document (a
// bounded tail for display) and in the durable activity log. History
// append failures are logged, never surfaced; the feed is best-effort.
func (s *service) appendActivity(ctx context.Context, session *models.Session, message string) {
	session.ActivityLog = append(session.ActivityLog, message)
	if len(session.ActivityLog) > s.activityTail {
		session.ActivityLog = session.ActivityLog[len(session.ActivityLog)-s.activityTail:]
	}

	err := s.activityRepo.AppendEntry(ctx, &activityRepo.AppendEntryInput{
		SessionID: session.ID,
		Entry: &models.ActivityEntry{
			Message:   message,
			CreatedAt: s.clock.Now(),
		},
	})
	if err != nil {
		slog.Warn("failed to append activity entry", "session_id", session.ID, "error", err)
	}
}

// playerIDsInJoinOrder returns player IDs sorted by join time, with ID as
// the tiebreaker so the order is stable.
func playerIDsInJoinOrder(session *models.Session) []string {
	ids := make([]string, 0, len(session.Players))
	for id := range session.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := session.Players[ids[i]], session.Players[ids[j]]
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ID < b.ID
	})
	return ids
}
