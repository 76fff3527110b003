package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/application/usecase"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/adapter"
)

const defaultReadTimeout = 60 * time.Second

// SocketController handles the websocket endpoint for realtime messaging
// traffic: presence events, direct message sends and read receipts.
type SocketController struct {
	directory       *realtime.Directory
	connectUC       *usecase.ConnectUserUseCase
	disconnectUC    *usecase.DisconnectUserUseCase
	sendMessageUC   *usecase.SendMessageUseCase
	markReadUC      *usecase.MarkReadUseCase
	inflightTimeout time.Duration
	log             logrus.FieldLogger
}

func NewSocketController(pool *pgxpool.Pool, registry presence.Registry, directory *realtime.Directory, locks *realtime.KeyedMutex, log logrus.FieldLogger) *SocketController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	notifier := NewWsNotifier(directory, log)
	flushUC := usecase.NewFlushMissedMessagesUseCase(repo, notifier, log)
	return &SocketController{
		directory:       directory,
		connectUC:       usecase.NewConnectUserUseCase(registry, directory, notifier, flushUC, locks, log),
		disconnectUC:    usecase.NewDisconnectUserUseCase(registry, directory, notifier, locks, log),
		sendMessageUC:   usecase.NewSendMessageUseCase(repo, registry, notifier, locks, log),
		markReadUC:      usecase.NewMarkReadUseCase(repo, notifier, log),
		inflightTimeout: 5 * time.Second,
		log:             log,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

// Handle upgrades HTTP connections to websocket and processes frames until the
// client disconnects. Each connection has one serial read loop, so a single
// user's events are handled in the order they were sent.
func (ctl *SocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(ws)
		conn.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
			defer cancel()
			_ = ctl.disconnectUC.Execute(ctx, usecase.DisconnectUserInput{UserID: conn.UserID, Handle: conn})
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "goOnline":
				ctl.handleGoOnline(c, conn, frame)
			case "sendMessage":
				ctl.handleSendMessage(c, conn, frame)
			case "markRead":
				ctl.handleMarkRead(c, conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *SocketController) handleGoOnline(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.UserID == "" {
		ctl.replyError(conn, "bad_request", "userId is required")
		return
	}
	// Only the read loop writes UserID; the binding below publishes it.
	conn.UserID = frame.UserID

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if err := ctl.connectUC.Execute(ctx, usecase.ConnectUserInput{UserID: frame.UserID, Handle: conn}); err != nil {
		ctl.handleUseCaseError(conn, err)
	}
}

func (ctl *SocketController) handleSendMessage(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	sender := frame.Sender
	if sender == "" {
		sender = conn.UserID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		SenderID:    sender,
		RecipientID: frame.Recipient,
		Text:        frame.Text,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
	}
}

func (ctl *SocketController) handleMarkRead(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if conn.UserID == "" {
		ctl.replyError(conn, "bad_request", "connection is not identified, send goOnline first")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.markReadUC.Execute(ctx, usecase.MarkReadInput{
		ReaderID:    conn.UserID,
		OtherUserID: frame.OtherUserID,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
	}
}

// handleUseCaseError maps classified failures to error frames sent only to the
// originating connection. Nothing here is broadcast.
func (ctl *SocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrStorage):
		ctl.log.WithError(err).Error("persistence failure on websocket event")
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, usecase.ErrValidation):
		ctl.replyError(conn, "bad_request", err.Error())
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *SocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
