package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/config"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/match"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the envelope for every websocket exchange.
type WSMessage struct {
	Type     string   `json:"type"`
	Token    string   `json:"token,omitempty"`
	MatchID  string   `json:"match_id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Password string   `json:"password,omitempty"`
	CardIDs  []string `json:"card_ids,omitempty"`
	Error    string   `json:"error,omitempty"`
	Data     any      `json:"data,omitempty"`
}

// Client is one connected websocket peer.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *Session
}

// Hub routes websocket traffic between clients, sessions and matches.
type Hub struct {
	mu       sync.Mutex
	clients  map[*Client]bool
	sessions *SessionManager
	matches  *match.Manager
	rules    rules.RuleConfig
	logger   *zap.Logger
}

// NewHub creates a hub over the given managers.
func NewHub(sessions *SessionManager, matches *match.Manager, rc rules.RuleConfig, logger *zap.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		sessions: sessions,
		matches:  matches,
		rules:    rc,
		logger:   logger,
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	if c.session != nil {
		h.sessions.Close(c.session.Token)
	}
}

// broadcast sends a message to every connected client.
func (h *Hub) broadcast(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow client; drop the frame rather than block the hub.
		}
	}
}

func (c *Client) reply(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error("failed to marshal reply", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) replyError(msgType, detail string) {
	c.reply(WSMessage{Type: msgType, Error: detail})
}

// ServeWS upgrades an HTTP request and runs the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.addClient(client)
	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.replyError("error", "malformed message")
			continue
		}
		c.hub.handle(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle dispatches one inbound message.
func (h *Hub) handle(c *Client, msg WSMessage) {
	switch msg.Type {
	case "join":
		s, err := h.sessions.Create(msg.Name, msg.Password)
		if err != nil {
			c.replyError("join", err.Error())
			return
		}
		c.session = s
		c.reply(WSMessage{Type: "join", Token: s.Token, Data: map[string]string{
			"player_id": s.PlayerID,
		}})

	case "create":
		if c.session == nil {
			c.replyError("create", "join first")
			return
		}
		if _, err := h.sessions.Validate(c.session.Token); err != nil {
			c.replyError("create", err.Error())
			return
		}
		h.createMatch(c)

	case "submit", "pass", "legal", "state":
		if c.session == nil {
			c.replyError(msg.Type, "join first")
			return
		}
		if _, err := h.sessions.Validate(c.session.Token); err != nil {
			c.replyError(msg.Type, err.Error())
			return
		}
		h.handleMatchMessage(c, msg)

	default:
		c.replyError("error", "unknown message type")
	}
}

// createMatch seats every joined client into a fresh match under the
// hub's configured rules and announces the initial state.
func (h *Hub) createMatch(c *Client) {
	h.mu.Lock()
	seats := make([]match.Seat, 0, len(h.clients))
	for cl := range h.clients {
		if cl.session != nil {
			seats = append(seats, match.Seat{
				ID:   cl.session.PlayerID,
				Name: cl.session.PlayerName,
			})
		}
	}
	h.mu.Unlock()

	m, err := h.matches.Create(seats, h.rules, time.Now().UnixNano())
	if err != nil {
		c.replyError("create", err.Error())
		return
	}
	h.logger.Info("match created via websocket",
		zap.String("match_id", m.ID),
		zap.Int("players", len(seats)),
	)
	h.broadcast(h.stateMessage(m))
}

func (h *Hub) handleMatchMessage(c *Client, msg WSMessage) {
	m, ok := h.matches.Get(msg.MatchID)
	if !ok {
		c.replyError(msg.Type, "unknown match")
		return
	}

	switch msg.Type {
	case "submit":
		result, fired, err := m.Submit(c.session.PlayerID, msg.CardIDs)
		if err != nil {
			c.replyError("submit", err.Error())
			return
		}
		effectNames := make([]string, 0, len(fired))
		for _, e := range fired {
			effectNames = append(effectNames, string(e))
		}
		c.reply(WSMessage{Type: "submit", Data: map[string]any{
			"valid":   result.Valid,
			"outcome": string(result.Outcome),
			"label":   result.Label,
			"effects": effectNames,
		}})
		if result.Valid {
			h.broadcast(h.stateMessage(m))
		}

	case "pass":
		if err := m.Pass(c.session.PlayerID); err != nil {
			c.replyError("pass", err.Error())
			return
		}
		h.broadcast(h.stateMessage(m))

	case "legal":
		plays, err := m.LegalPlays(c.session.PlayerID)
		if err != nil {
			c.replyError("legal", err.Error())
			return
		}
		out := make([][]string, 0, len(plays))
		for _, cards := range plays {
			ids := make([]string, 0, len(cards))
			for _, card := range cards {
				ids = append(ids, card.ID)
			}
			out = append(out, ids)
		}
		c.reply(WSMessage{Type: "legal", Data: out})

	case "state":
		c.reply(h.stateMessage(m))
	}
}

func (h *Hub) stateMessage(m *match.Match) WSMessage {
	standing := m.Standing()
	return WSMessage{
		Type:    "state",
		MatchID: m.ID,
		Data: map[string]any{
			"state":          m.State().String(),
			"current_player": m.CurrentPlayerID(),
			"standing":       standing,
		},
	}
}

// Start runs the websocket HTTP server until the context is canceled.
func Start(ctx context.Context, cfg config.ServerConfig, hub *Hub, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	srv := &http.Server{
		Addr:    cfg.WebSocket.Address,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("websocket server listening", zap.String("address", cfg.WebSocket.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
