// Package ws exposes the game service over a WebSocket command protocol.
// Clients send JSON commands and receive one response each, plus a
// stream of session snapshots for any session they subscribe to.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
	"github.com/tacoeaterman/yepagain/internal/services/game"
)

const (
	defaultRatePerSecond = 5
	defaultBurst         = 10
)

// Config holds configuration for the gateway
type Config struct {
	GameService game.Service
	SessionRepo sessionRepo.Repository

	// Commands per second allowed per player, with burst headroom
	RatePerSecond float64
	Burst         int
}

// Gateway accepts WebSocket connections and bridges them to the game
// service.
type Gateway struct {
	gameService game.Service
	sessionRepo sessionRepo.Repository
	limiter     *Limiter
	upgrader    websocket.Upgrader
}

// New creates a new gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	perSecond := cfg.RatePerSecond
	if perSecond == 0 {
		perSecond = defaultRatePerSecond
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = defaultBurst
	}

	return &Gateway{
		gameService: cfg.GameService,
		sessionRepo: cfg.SessionRepo,
		limiter:     NewLimiter(perSecond, burst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// ServeHTTP upgrades the request and runs the connection's command loop
// until the client disconnects.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "playerId is required", http.StatusBadRequest)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &connection{
		gateway:  g,
		conn:     conn,
		playerID: playerID,
	}
	c.run(r.Context())
}

// connection is one player's socket session
type connection struct {
	gateway  *Gateway
	conn     *websocket.Conn
	playerID string

	// writeMu serializes writes between the command loop and the
	// subscription pump
	writeMu sync.Mutex

	// subMu guards subscription; one active subscription per connection
	subMu        sync.Mutex
	subscription sessionRepo.Subscription
}

func (c *connection) run(ctx context.Context) {
	defer func() {
		c.closeSubscription()
		c.gateway.limiter.Forget(c.playerID)
		if err := c.conn.Close(); err != nil {
			slog.Debug("closing websocket", "player_id", c.playerID, "error", err)
		}
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "player_id", c.playerID, "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.writeError(&Command{}, "malformed command")
			continue
		}

		if !c.gateway.limiter.Allow(c.playerID) {
			c.writeError(&cmd, "rate limit exceeded")
			continue
		}

		c.dispatch(ctx, &cmd)
	}
}

func (c *connection) dispatch(ctx context.Context, cmd *Command) {
	result, err := c.handle(ctx, cmd)
	if err != nil {
		c.writeError(cmd, err.Error())
		return
	}
	c.write(&Response{
		Type:      "result",
		Action:    cmd.Action,
		RequestID: cmd.RequestID,
		Data:      result,
	})
}

func (c *connection) handle(ctx context.Context, cmd *Command) (any, error) {
	switch cmd.Action {
	case ActionCreateSession:
		var p createSessionPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.CreateSession(ctx, &game.CreateSessionInput{
			HostID:      c.playerID,
			HostName:    p.HostName,
			SessionName: p.SessionName,
			TotalHoles:  p.TotalHoles,
		})

	case ActionJoinSession:
		var p joinSessionPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.JoinSession(ctx, &game.JoinSessionInput{
			Code:        p.Code,
			PlayerID:    c.playerID,
			DisplayName: p.DisplayName,
		})

	case ActionLeaveSession:
		var p sessionOnlyPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.LeaveSession(ctx, &game.LeaveSessionInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
		})

	case ActionStartSession:
		var p sessionOnlyPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.StartSession(ctx, &game.StartSessionInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
		})

	case ActionSetPar:
		var p setParPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.SetPar(ctx, &game.SetParInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
			HoleIndex: p.HoleIndex,
			Par:       p.Par,
		})

	case ActionSubmitScore:
		var p submitScorePayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.SubmitScore(ctx, &game.SubmitScoreInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
			HoleIndex: p.HoleIndex,
			Strokes:   p.Strokes,
		})

	case ActionPlayCard:
		var p playCardPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.PlayCard(ctx, &game.PlayCardInput{
			SessionID:       p.SessionID,
			PlayerID:        c.playerID,
			CardInstanceID:  p.CardInstanceID,
			TargetPlayerIDs: p.TargetPlayerIDs,
		})

	case ActionAcknowledgeCard:
		var p effectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.AcknowledgeCard(ctx, &game.AcknowledgeCardInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
			EffectID:  p.EffectID,
		})

	case ActionReflectCard:
		var p effectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.ReflectCard(ctx, &game.ReflectCardInput{
			SessionID: p.SessionID,
			PlayerID:  c.playerID,
			EffectID:  p.EffectID,
		})

	case ActionRedirectCard:
		var p redirectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.RedirectCard(ctx, &game.RedirectCardInput{
			SessionID:   p.SessionID,
			PlayerID:    c.playerID,
			EffectID:    p.EffectID,
			NewTargetID: p.NewTargetID,
		})

	case ActionAdvanceHole:
		var p advanceHolePayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.AdvanceHole(ctx, &game.AdvanceHoleInput{
			SessionID:    p.SessionID,
			PlayerID:     c.playerID,
			ExpectedHole: p.ExpectedHole,
		})

	case ActionGetSession:
		var p sessionOnlyPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.GetSession(ctx, &game.GetSessionInput{SessionID: p.SessionID})

	case ActionGetLeaderboard:
		var p sessionOnlyPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.GetLeaderboard(ctx, &game.GetLeaderboardInput{SessionID: p.SessionID})

	case ActionGetActivity:
		var p activityPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		return c.gateway.gameService.GetActivityHistory(ctx, &game.GetActivityHistoryInput{
			SessionID: p.SessionID,
			Start:     p.Start,
			Stop:      p.Stop,
		})

	case ActionSubscribe:
		var p sessionOnlyPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return nil, ErrMalformedPayload
		}
		if err := c.subscribe(ctx, p.SessionID); err != nil {
			return nil, err
		}
		return map[string]string{"sessionId": p.SessionID}, nil

	default:
		return nil, ErrUnknownAction
	}
}

// subscribe replaces the connection's session subscription and starts a
// pump pushing snapshots until the subscription closes.
func (c *connection) subscribe(ctx context.Context, sessionID string) error {
	sub, err := c.gateway.sessionRepo.Subscribe(ctx, &sessionRepo.SubscribeInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	c.subMu.Lock()
	if c.subscription != nil {
		if closeErr := c.subscription.Close(); closeErr != nil {
			slog.Debug("closing previous subscription", "error", closeErr)
		}
	}
	c.subscription = sub
	c.subMu.Unlock()

	go func() {
		for session := range sub.Updates() {
			c.write(&Response{
				Type: "session",
				Data: session,
			})
		}
	}()

	return nil
}

func (c *connection) closeSubscription() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.subscription != nil {
		if err := c.subscription.Close(); err != nil {
			slog.Debug("closing subscription", "error", err)
		}
		c.subscription = nil
	}
}

func (c *connection) writeError(cmd *Command, message string) {
	c.write(&Response{
		Type:      "error",
		Action:    cmd.Action,
		RequestID: cmd.RequestID,
		Error:     message,
	})
}

func (c *connection) write(resp *Response) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		slog.Debug("websocket write failed", "player_id", c.playerID, "error", err)
	}
}
