package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
)

// ConnectUserInput binds a freshly identified connection handle to a user.
type ConnectUserInput struct {
	UserID string
	Handle realtime.Handle
}

// ConnectUserUseCase reacts to a user coming online: it records the handle in
// the local directory (last writer wins), adds the user to the shared
// presence registry, broadcasts the updated online set and flushes queued
// messages to the new handle, in that order.
type ConnectUserUseCase struct {
	Registry  presence.Registry
	Directory *realtime.Directory
	Notifier  Notifier
	Flush     *FlushMissedMessagesUseCase
	Locks     *realtime.KeyedMutex
	Log       logrus.FieldLogger
}

func NewConnectUserUseCase(registry presence.Registry, directory *realtime.Directory, notifier Notifier, flush *FlushMissedMessagesUseCase, locks *realtime.KeyedMutex, log logrus.FieldLogger) *ConnectUserUseCase {
	return &ConnectUserUseCase{Registry: registry, Directory: directory, Notifier: notifier, Flush: flush, Locks: locks, Log: log}
}

func (uc *ConnectUserUseCase) Execute(ctx context.Context, in ConnectUserInput) error {
	if in.UserID == "" || in.Handle == nil {
		return fmt.Errorf("%w: user id and handle are required", ErrValidation)
	}

	uc.Locks.Lock(in.UserID)
	defer uc.Locks.Unlock(in.UserID)

	// A reconnect from a second device replaces the routing for this process;
	// the abandoned handle is closed after the swap.
	if replaced := uc.Directory.Bind(in.UserID, in.Handle); replaced != nil {
		replaced.Close(realtime.CloseSessionReplaced, "session replaced")
	}

	if err := uc.Registry.Add(ctx, in.UserID); err != nil {
		// Presence features degrade but the connection itself stays usable:
		// the directory entry above is enough for local routing.
		uc.Log.WithError(err).WithField("user", in.UserID).
			Warn("failed to add user to presence registry")
	}

	uc.Log.WithField("user", in.UserID).Info("user online")

	broadcastOnline(ctx, uc.Registry, uc.Notifier, uc.Log)

	if _, err := uc.Flush.Execute(ctx, FlushMissedMessagesInput{UserID: in.UserID}); err != nil {
		// Queued messages stay in status sent and are retried on next connect.
		uc.Log.WithError(err).WithField("user", in.UserID).
			Warn("missed message flush failed")
	}
	return nil
}
