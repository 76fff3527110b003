package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
)

// DisconnectUserInput identifies the handle that went away. UserID is empty
// when the connection dropped before identifying itself.
type DisconnectUserInput struct {
	UserID string
	Handle realtime.Handle
}

// DisconnectUserUseCase reacts to a connection going away. The directory entry
// is removed only if the departing handle is still the one on record, so a
// disconnect arriving after a reconnect from another device leaves the new
// routing intact and keeps the user online.
type DisconnectUserUseCase struct {
	Registry  presence.Registry
	Directory *realtime.Directory
	Notifier  Notifier
	Locks     *realtime.KeyedMutex
	Log       logrus.FieldLogger
}

func NewDisconnectUserUseCase(registry presence.Registry, directory *realtime.Directory, notifier Notifier, locks *realtime.KeyedMutex, log logrus.FieldLogger) *DisconnectUserUseCase {
	return &DisconnectUserUseCase{Registry: registry, Directory: directory, Notifier: notifier, Locks: locks, Log: log}
}

func (uc *DisconnectUserUseCase) Execute(ctx context.Context, in DisconnectUserInput) error {
	if in.UserID == "" || in.Handle == nil {
		// The handle never completed identification; nothing to undo.
		return nil
	}

	uc.Locks.Lock(in.UserID)
	defer uc.Locks.Unlock(in.UserID)

	if !uc.Directory.Release(in.UserID, in.Handle) {
		// A newer handle owns the routing; this was a stale disconnect.
		return nil
	}

	if err := uc.Registry.Remove(ctx, in.UserID); err != nil {
		uc.Log.WithError(err).WithField("user", in.UserID).
			Warn("failed to remove user from presence registry")
	}

	uc.Log.WithField("user", in.UserID).Info("user offline")

	broadcastOnline(ctx, uc.Registry, uc.Notifier, uc.Log)
	return nil
}
