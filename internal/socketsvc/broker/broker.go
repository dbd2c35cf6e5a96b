package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/gorilla/websocket"
)

type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(socketId string) (*websocket.Conn, bool)
	GetRoomSockets func(gameId int64) []string
	GetUserSockets func(userId int64) []string
}

func NewBroker(conn *nats.Conn, getConn func(string) (*websocket.Conn, bool),
	getRoom func(int64) []string, getUser func(int64) []string) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  getConn,
		GetRoomSockets: getRoom,
		GetUserSockets: getUser,
	}
}

func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, func(msg *nats.Msg) {
		b.handleMessages(msg.Data)
	})
	if err != nil {
		log.Errorf("unable to subscribe to topic %s: %v", topic, err)
		return nil, err
	}
	return sub, nil
}

func (b *Broker) QueueSubscribe(topic string, queue string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, queue, func(msg *nats.Msg) {
		b.handleMessages(msg.Data)
	})
	if err != nil {
		log.Errorf("unable to queue subscribe to topic %s: %v", topic, err)
		return nil, err
	}
	return sub, nil
}

func (b *Broker) Publish(topic string, message []byte) error {
	if err := b.Conn.Publish(topic, message); err != nil {
		log.Errorf("unable to publish to topic %s: %v", topic, err)
		return err
	}
	return nil
}

func (b *Broker) handleMessages(payload []byte) {
	var msg comm.WSMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Errorf("invalid game service message: %v", err)
		return
	}

	if msg.Type == "game-event" {
		b.handleEvent(msg.Data)
		return
	}

	// command responses go back to the socket that issued the command
	b.sendMessage(msg.SocketId, &msg)
}

// handleEvent fans a game event out to its audience. Events addressed to
// a user go to that user's sockets only, the rest go to the whole room.
func (b *Broker) handleEvent(data json.RawMessage) {
	var event comm.Event
	if err := json.Unmarshal(data, &event); err != nil {
		log.Errorf("invalid game event: %v", err)
		return
	}

	msg := &comm.WSMessage{Type: "game-event", Data: data}

	var sockets []string
	if event.UserID != 0 {
		sockets = b.GetUserSockets(event.UserID)
	} else {
		sockets = b.GetRoomSockets(event.GameID)
	}

	for _, socketId := range sockets {
		b.sendMessage(socketId, msg)
	}
}

func (b *Broker) sendMessage(socketId string, msg *comm.WSMessage) {
	conn, ok := b.GetConnection(socketId)
	if !ok {
		log.Warnf("no connection for socket %s, dropping %s", socketId, msg.Type)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Errorf("unable to write to socket %s: %v", socketId, err)
	}
}
