package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for dev simplicity
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// stockAlert is the message pushed when a produit crosses its alert threshold.
type stockAlert struct {
	Type       string `json:"type"`
	BoutiqueID string `json:"boutique_id"`
	ProduitID  string `json:"produit_id"`
	Nom        string `json:"nom"`
	Stock      int    `json:"stock"`
}

// Client represents a single connected WebSocket client. Alerts are filtered
// against the session's boutique before delivery.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	Session auth.Session
}

// Hub maintains the set of active clients and fans stock alerts out to the
// clients allowed to see them.
type Hub struct {
	clients    map[*Client]bool
	alerts     chan alertEnvelope
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *zap.Logger
}

type alertEnvelope struct {
	boutiqueID string
	payload    []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		alerts:     make(chan alertEnvelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// NotifyLowStock queues a stock alert for every client scoped to the
// produit's boutique. Admin clients receive alerts for all boutiques.
func (h *Hub) NotifyLowStock(produit model.Produit) {
	payload, err := json.Marshal(stockAlert{
		Type:       "stock_alert",
		BoutiqueID: produit.BoutiqueID.String(),
		ProduitID:  produit.ID.String(),
		Nom:        produit.Nom,
		Stock:      produit.Stock,
	})
	if err != nil {
		h.logger.Error("failed to encode stock alert", zap.Error(err))
		return
	}
	h.alerts <- alertEnvelope{boutiqueID: produit.BoutiqueID.String(), payload: payload}
}

// Run starts the core dispatch loop for WebSocket events.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("websocket client connected", zap.String("user_id", client.Session.UserID.String()))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("websocket client disconnected", zap.String("user_id", client.Session.UserID.String()))
			}
			h.mu.Unlock()
		case alert := <-h.alerts:
			h.mu.Lock()
			for client := range h.clients {
				if !h.canReceive(client, alert.boutiqueID) {
					continue
				}
				select {
				case client.Send <- alert.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) canReceive(client *Client, boutiqueID string) bool {
	if client.Session.IsAdmin() {
		return true
	}
	return client.Session.BoutiqueID != nil && client.Session.BoutiqueID.String() == boutiqueID
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		// Fast track writing queued messages
		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		// Just reading to keep the connection alive
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
	}
}

// ServeWs authenticates the peer via the token query param and upgrades the
// connection.
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	session, err := auth.ParseToken(secret, tokenString)
	if err != nil {
		hub.logger.Warn("websocket connection rejected", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256), Session: session}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
