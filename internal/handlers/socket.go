package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/relay"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/utils"
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

// ChatGateway is the live socket gateway, set by InitSocketServer. REST
// handlers use it to fan out events for actions taken over HTTP.
var ChatGateway *SocketGateway

// SocketGateway adapts the socket.io server to the relay's Broadcaster
// contract and keeps the connection registry needed for per-connection
// emits (error payloads, presence notices).
type SocketGateway struct {
	Server *socketio.Server
	Relay  *relay.Relay

	mu    sync.RWMutex
	conns map[string]socketio.Conn
}

func roomName(conversationID string) string {
	return "conversation:" + conversationID
}

// ToRoom broadcasts to every connection joined to the conversation's
// transport room, the sender included.
func (g *SocketGateway) ToRoom(conversationID, event string, payload interface{}) {
	g.Server.BroadcastToRoom("/", roomName(conversationID), event, payload)
}

// ToConn emits to a single connection. Unknown ids (already
// disconnected) are dropped silently.
func (g *SocketGateway) ToConn(connID, event string, payload interface{}) {
	g.mu.RLock()
	conn, ok := g.conns[connID]
	g.mu.RUnlock()
	if ok {
		conn.Emit(event, payload)
	}
}

func (g *SocketGateway) track(s socketio.Conn) {
	g.mu.Lock()
	g.conns[s.ID()] = s
	g.mu.Unlock()
}

func (g *SocketGateway) untrack(connID string) {
	g.mu.Lock()
	delete(g.conns, connID)
	g.mu.Unlock()
}

// identityOf resolves the identity bound at handshake. Unauthenticated
// connections carry a zero identity; the relay answers their events
// with UNAUTHENTICATED errors instead of dropping the connection.
func identityOf(s socketio.Conn) relay.Identity {
	if id, ok := s.Context().(relay.Identity); ok {
		return id
	}
	return relay.Identity{}
}

// resolveIdentity reads the session JWT from the forwarded cookie, with
// a query-param fallback for clients that cannot send cookies on the
// websocket handshake.
func resolveIdentity(s socketio.Conn) relay.Identity {
	token := ""
	req := http.Request{Header: s.RemoteHeader()}
	if cookie, err := req.Cookie(middleware.SessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		url := s.URL()
		token = url.Query().Get("token")
	}
	if token == "" {
		return relay.Identity{}
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		logger.Warn().Str("socket", s.ID()).Msg("Socket presented an invalid token")
		return relay.Identity{}
	}
	return relay.Identity{UserID: claims.UserID, Role: claims.Role}
}

func InitSocketServer(store relay.Store) *SocketGateway {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	gw := &SocketGateway{
		Server: server,
		conns:  make(map[string]socketio.Conn),
	}
	gw.Relay = relay.New(store, gw, logger.With("relay"))

	server.OnConnect("/", func(s socketio.Conn) error {
		id := resolveIdentity(s)
		s.SetContext(id)
		gw.track(s)
		logger.Debug().Str("socket", s.ID()).Str("user", id.UserID).Msg("socket connected")
		return nil
	})

	server.OnEvent("/", relay.EventJoinRoom, func(s socketio.Conn, p relay.RoomPayload) {
		if err := gw.Relay.Join(s.ID(), identityOf(s), p); err == nil {
			s.Join(roomName(p.ConversationID))
		}
	})

	server.OnEvent("/", relay.EventLeaveRoom, func(s socketio.Conn, p relay.RoomPayload) {
		if err := gw.Relay.Leave(s.ID(), identityOf(s), p); err == nil {
			s.Leave(roomName(p.ConversationID))
		}
	})

	server.OnEvent("/", relay.EventSendMessage, func(s socketio.Conn, p relay.SendMessagePayload) {
		gw.Relay.SendMessage(context.Background(), s.ID(), identityOf(s), p)
	})

	server.OnEvent("/", relay.EventTyping, func(s socketio.Conn, p relay.RoomPayload) {
		gw.Relay.Typing(s.ID(), identityOf(s), p)
	})

	server.OnEvent("/", relay.EventStopTyping, func(s socketio.Conn, p relay.RoomPayload) {
		gw.Relay.StopTyping(s.ID(), identityOf(s), p)
	})

	server.OnEvent("/", relay.EventMarkRead, func(s socketio.Conn, p relay.MarkReadPayload) {
		gw.Relay.MarkRead(context.Background(), s.ID(), identityOf(s), p)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		gw.untrack(s.ID())
		gw.Relay.Disconnect(s.ID(), identityOf(s))
		logger.Debug().Str("socket", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("socket error")
	})

	go server.Serve()
	ChatGateway = gw
	return gw
}

// Gin handler to wrap Socket.io
func SocketHandler(gw *SocketGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		gw.Server.ServeHTTP(c.Writer, c.Request)
	}
}
