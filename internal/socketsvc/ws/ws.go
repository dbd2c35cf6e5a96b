package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/socketsvc/broker"
)

const topicToGame = "socket.service"

type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	roomMap sync.Map // socketId -> gameId (int64)
	userMap sync.Map // socketId -> userId (int64)
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// envelope is the subset of message payloads the hub needs for routing.
// Game commands carry user_id and, once a game exists, game_id.
type envelope struct {
	UserID int64 `json:"user_id"`
	GameID int64 `json:"game_id"`
}

func (s *Ws) SocketMessage(conn *websocket.Conn, socketId string, messageType int, payload []byte) {
	var msg comm.WSMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Errorf("invalid socket message: %v", err)
		return
	}

	var env envelope
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			log.Errorf("invalid message data for type %s: %v", msg.Type, err)
			return
		}
	}

	if env.UserID != 0 {
		s.userMap.Store(socketId, env.UserID)
	}
	if env.GameID != 0 {
		s.roomMap.Store(socketId, env.GameID)
	}

	msg.SocketId = socketId
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("unable to marshal relay message: %v", err)
		return
	}

	if err := s.Broker.Publish(topicToGame, data); err != nil {
		log.Errorf("unable to relay %s to game service: %v", msg.Type, err)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	value, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	conn, ok := value.(*websocket.Conn)
	return conn, ok
}

// GetRoomSockets returns the socket ids of every connection that has
// interacted with the given game.
func (s *Ws) GetRoomSockets(gameId int64) []string {
	sockets := []string{}
	s.roomMap.Range(func(key, value interface{}) bool {
		if id, ok := value.(int64); ok && id == gameId {
			sockets = append(sockets, key.(string))
		}
		return true
	})
	return sockets
}

// GetUserSockets returns the socket ids associated with the given user.
// A user may hold more than one connection, every one gets the event.
func (s *Ws) GetUserSockets(userId int64) []string {
	sockets := []string{}
	s.userMap.Range(func(key, value interface{}) bool {
		if id, ok := value.(int64); ok && id == userId {
			sockets = append(sockets, key.(string))
		}
		return true
	})
	return sockets
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)
	s.userMap.Delete(socketId)
	log.Infof("socket %s disconnected", socketId)
}
