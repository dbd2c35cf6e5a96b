package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
	"github.com/avvvet/monopoly-services/internal/gamesvc/service"
)

const (
	// topicToSocket carries responses and room events back to the socket service.
	topicToSocket = "game.service"
	// topicFromSocket carries client commands relayed by the socket service.
	topicFromSocket = "socket.service"

	commandTimeout = 10 * time.Second
)

type Broker struct {
	Conn          *nats.Conn
	Engine        *engine.Engine
	UserService   *service.UserService
	WalletService *service.WalletService
	ChatService   *service.ChatService
}

func NewBroker(nc *nats.Conn, eng *engine.Engine, userService *service.UserService,
	walletService *service.WalletService, chatService *service.ChatService) *Broker {
	return &Broker{
		Conn:          nc,
		Engine:        eng,
		UserService:   userService,
		WalletService: walletService,
		ChatService:   chatService,
	}
}

// Response is the envelope for every command reply. Status is "ok" or one of
// the codes from statusOf.
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// handles message coming from socket
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch msg.Type {
	case "init":
		b.handleInit(ctx, msg)
	case "get-balance":
		b.handleGetBalance(ctx, msg)
	case "create-game":
		b.handleCreateGame(ctx, msg)
	case "list-games":
		b.handleListGames(ctx, msg)
	case "join-game":
		b.handleJoinGame(ctx, msg)
	case "start-game":
		b.handleStartGame(ctx, msg)
	case "game-state":
		b.handleGameState(ctx, msg)
	case "roll":
		b.handleRoll(ctx, msg)
	case "buy-property":
		b.handleBuyProperty(ctx, msg)
	case "pay-rent":
		b.handlePayRent(ctx, msg)
	case "pay-bank-debt":
		b.handlePayBankDebt(ctx, msg)
	case "declare-bankruptcy":
		b.handleDeclareBankruptcy(ctx, msg)
	case "sell-property":
		b.handleSellProperty(ctx, msg)
	case "upgrade-property":
		b.handleUpgradeProperty(ctx, msg)
	case "end-turn":
		b.handleEndTurn(ctx, msg)
	case "chat":
		b.handleChat(ctx, msg)
	case "chat-history":
		b.handleChatHistory(ctx, msg)
	default:
		log.Errorf("Unknown message type %q", msg.Type)
	}
}

func (b *Broker) handleInit(ctx context.Context, msg *comm.WSMessage) {
	userInfo := models.User{}
	if err := json.Unmarshal(msg.Data, &userInfo); err != nil {
		log.Errorf("Error decoding init request: %s", err)
		return
	}

	user, err := b.UserService.GetOrCreateUser(ctx, userInfo)
	if err != nil {
		log.Errorf("Error [UserService.GetOrCreateUser] %s", err)
		b.respond("init-response", msg.SocketId, err, nil)
		return
	}

	balance, err := b.WalletService.GetUserBalance(ctx, user.UserId)
	if err != nil {
		log.Errorf("Error [WalletService.GetUserBalance] %s", err)
		b.respond("init-response", msg.SocketId, err, nil)
		return
	}

	b.respond("init-response", msg.SocketId, nil, comm.PlayerData{
		Name:    user.Name,
		UserId:  user.UserId,
		Balance: balance.StringFixed(2),
	})
}

func (b *Broker) handleGetBalance(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding get-balance request: %s", err)
		return
	}

	balance, err := b.WalletService.GetUserBalance(ctx, request.UserID)
	if err != nil {
		log.Errorf("Error [WalletService.GetUserBalance] %s", err)
		b.respond("balance-response", msg.SocketId, err, nil)
		return
	}

	b.respond("balance-response", msg.SocketId, nil, comm.PlayerData{
		UserId:  request.UserID,
		Balance: balance.StringFixed(2),
	})
}

func (b *Broker) handleCreateGame(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		UserID          int64 `json:"user_id"`
		MaxPlayers      int   `json:"max_players"`
		StartingBalance int64 `json:"starting_balance"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding create-game request: %s", err)
		return
	}

	game, err := b.Engine.CreateGame(ctx, request.UserID, request.MaxPlayers, request.StartingBalance)
	if err != nil {
		log.Errorf("Error [Engine.CreateGame] %s", err)
		b.respond("create-game-response", msg.SocketId, err, nil)
		return
	}

	b.respond("create-game-response", msg.SocketId, nil, game)
}

func (b *Broker) handleListGames(ctx context.Context, msg *comm.WSMessage) {
	games, err := b.Engine.ListOpenGames(ctx)
	if err != nil {
		log.Errorf("Error [Engine.ListOpenGames] %s", err)
		b.respond("list-games-response", msg.SocketId, err, nil)
		return
	}

	b.respond("list-games-response", msg.SocketId, nil, games)
}

func (b *Broker) handleJoinGame(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		UserID int64 `json:"user_id"`
		GameID int64 `json:"game_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding join-game request: %s", err)
		return
	}

	res, err := b.Engine.JoinGame(ctx, request.GameID, request.UserID)
	if err != nil {
		log.Errorf("Error [Engine.JoinGame] %s", err)
		b.respond("join-game-response", msg.SocketId, err, nil)
		return
	}

	b.respond("join-game-response", msg.SocketId, nil, res.Snapshot)
	b.publishEvents(res.Events)
}

func (b *Broker) handleStartGame(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		UserID int64 `json:"user_id"`
		GameID int64 `json:"game_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding start-game request: %s", err)
		return
	}

	res, err := b.Engine.StartGame(ctx, request.GameID, request.UserID)
	if err != nil {
		log.Errorf("Error [Engine.StartGame] %s", err)
		b.respond("start-game-response", msg.SocketId, err, nil)
		return
	}

	b.respond("start-game-response", msg.SocketId, nil, res.Snapshot)
	b.publishEvents(res.Events)
}

func (b *Broker) handleGameState(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		GameID int64 `json:"game_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding game-state request: %s", err)
		return
	}

	snap, err := b.Engine.Snapshot(ctx, request.GameID)
	if err != nil {
		log.Errorf("Error [Engine.Snapshot] %s", err)
		b.respond("game-state-response", msg.SocketId, err, nil)
		return
	}

	b.respond("game-state-response", msg.SocketId, nil, snap)
}

func (b *Broker) handleRoll(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		UserID  int64 `json:"user_id"`
		GameID  int64 `json:"game_id"`
		PayJail bool  `json:"pay_jail"`
		UseCard bool  `json:"use_card"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding roll request: %s", err)
		return
	}

	res, err := b.Engine.Roll(ctx, request.GameID, request.UserID, engine.RollOptions{
		PayJail: request.PayJail,
		UseCard: request.UseCard,
	})
	if err != nil {
		log.Errorf("Error [Engine.Roll] user %d game %d: %s", request.UserID, request.GameID, err)
		b.respond("roll-response", msg.SocketId, err, nil)
		return
	}

	b.respond("roll-response", msg.SocketId, nil, res.Report)
	b.publishEvents(res.Events)
}

// settlement request shared by the pending-action commands
type settleRequest struct {
	UserID   int64 `json:"user_id"`
	GameID   int64 `json:"game_id"`
	ActionID int64 `json:"action_id"`
	TileID   int64 `json:"tile_id"`
}

func (b *Broker) handleBuyProperty(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding buy-property request: %s", err)
		return
	}

	res, err := b.Engine.BuyProperty(ctx, request.GameID, request.UserID, request.ActionID, request.TileID)
	b.respondAction("buy-property-response", msg.SocketId, res, err)
}

func (b *Broker) handlePayRent(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding pay-rent request: %s", err)
		return
	}

	res, err := b.Engine.PayRent(ctx, request.GameID, request.UserID, request.ActionID)
	b.respondAction("pay-rent-response", msg.SocketId, res, err)
}

func (b *Broker) handlePayBankDebt(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding pay-bank-debt request: %s", err)
		return
	}

	res, err := b.Engine.PayBankDebt(ctx, request.GameID, request.UserID, request.ActionID)
	b.respondAction("pay-bank-debt-response", msg.SocketId, res, err)
}

func (b *Broker) handleDeclareBankruptcy(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding declare-bankruptcy request: %s", err)
		return
	}

	res, err := b.Engine.DeclareBankruptcy(ctx, request.GameID, request.UserID, request.ActionID)
	b.respondAction("declare-bankruptcy-response", msg.SocketId, res, err)
}

func (b *Broker) handleSellProperty(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding sell-property request: %s", err)
		return
	}

	res, err := b.Engine.SellProperty(ctx, request.GameID, request.UserID, request.TileID)
	b.respondAction("sell-property-response", msg.SocketId, res, err)
}

func (b *Broker) handleUpgradeProperty(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding upgrade-property request: %s", err)
		return
	}

	res, err := b.Engine.UpgradeProperty(ctx, request.GameID, request.UserID, request.TileID)
	b.respondAction("upgrade-property-response", msg.SocketId, res, err)
}

func (b *Broker) handleEndTurn(ctx context.Context, msg *comm.WSMessage) {
	var request settleRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding end-turn request: %s", err)
		return
	}

	res, err := b.Engine.EndTurn(ctx, request.GameID, request.UserID)
	b.respondAction("end-turn-response", msg.SocketId, res, err)
}

func (b *Broker) handleChat(ctx context.Context, msg *comm.WSMessage) {
	chat := &models.ChatMessage{}
	if err := json.Unmarshal(msg.Data, chat); err != nil {
		log.Errorf("Error decoding chat request: %s", err)
		return
	}

	if err := b.ChatService.Post(ctx, chat); err != nil {
		log.Errorf("Error [ChatService.Post] %s", err)
		b.respond("chat-response", msg.SocketId, err, nil)
		return
	}

	b.respond("chat-response", msg.SocketId, nil, chat)
	b.publishEvents([]comm.Event{comm.NewEvent(comm.EventChatMessage, chat.GameID, 0, chat)})
}

func (b *Broker) handleChatHistory(ctx context.Context, msg *comm.WSMessage) {
	var request struct {
		GameID int64 `json:"game_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding chat-history request: %s", err)
		return
	}

	msgs, err := b.ChatService.History(ctx, request.GameID)
	if err != nil {
		log.Errorf("Error [ChatService.History] %s", err)
		b.respond("chat-history-response", msg.SocketId, err, nil)
		return
	}

	b.respond("chat-history-response", msg.SocketId, nil, msgs)
}

// respondAction is the uniform reply for settlement commands: the action
// result back to the caller, the events to everyone.
func (b *Broker) respondAction(msgType, socketId string, res *engine.ActionResult, err error) {
	if err != nil {
		log.Errorf("Error [%s] %s", msgType, err)
		b.respond(msgType, socketId, err, nil)
		return
	}
	b.respond(msgType, socketId, nil, res)
	b.publishEvents(res.Events)
}

func (b *Broker) respond(msgType, socketId string, err error, payload any) {
	resp := Response{Status: statusOf(err)}
	if payload != nil {
		data, merr := json.Marshal(payload)
		if merr != nil {
			log.Errorf("unable to marshal %s payload: %s", msgType, merr)
			return
		}
		resp.Data = data
	}

	data, merr := json.Marshal(resp)
	if merr != nil {
		log.Errorf("unable to marshal %s response: %s", msgType, merr)
		return
	}

	msg := &comm.WSMessage{
		Type:     msgType,
		Data:     data,
		SocketId: socketId,
	}

	payloadBytes, merr := json.Marshal(msg)
	if merr != nil {
		log.Errorf("Error %s", merr)
		return
	}

	b.Publish(topicToSocket, payloadBytes)
}

// publishEvents fans realtime events out through the socket service; each one
// rides its own envelope so rooms and single users route independently.
func (b *Broker) publishEvents(events []comm.Event) {
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			log.Errorf("unable to marshal event %s: %s", ev.Type, err)
			continue
		}

		msg := &comm.WSMessage{
			Type: "game-event",
			Data: data,
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			log.Errorf("Error %s", err)
			continue
		}

		b.Publish(topicToSocket, payload)
	}
}

// consume message from socket service
func (b *Broker) SubscribSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
