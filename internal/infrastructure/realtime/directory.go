package realtime

import "sync"

// Directory is the process-local routing table from user identity to the
// active connection handle on this process. It keeps at most one handle per
// user: a reconnect silently replaces the previous routing (last writer wins).
//
// The directory deliberately answers a narrower question than the presence
// registry: "is this user reachable from this process". In a multi-instance
// deployment each process holds its own directory while all share one registry.
type Directory struct {
	mu      sync.RWMutex
	handles map[string]Handle
}

// NewDirectory constructs an empty Directory. Tests instantiate independent
// directories; nothing here is process-global.
func NewDirectory() *Directory {
	return &Directory{handles: make(map[string]Handle)}
}

// Bind records h as the routing for userID, replacing any prior handle.
// The replaced handle, if any, is returned so the caller can close it.
func (d *Directory) Bind(userID string, h Handle) Handle {
	d.mu.Lock()
	previous := d.handles[userID]
	d.handles[userID] = h
	d.mu.Unlock()
	if previous == h {
		return nil
	}
	return previous
}

// Release removes the entry for userID only if h is still the handle on
// record. It reports whether the entry was removed. The conditional check
// guards against the disconnect-after-reconnect race: a stale disconnect for
// a handle that was already replaced must not tear down the new routing.
func (d *Directory) Release(userID string, h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	current, ok := d.handles[userID]
	if !ok || current != h {
		return false
	}
	delete(d.handles, userID)
	return true
}

// Lookup returns the handle bound to userID, if any.
func (d *Directory) Lookup(userID string) (Handle, bool) {
	d.mu.RLock()
	h, ok := d.handles[userID]
	d.mu.RUnlock()
	return h, ok
}

// Each calls fn for every bound handle over a snapshot of the directory, so a
// slow or closing connection inside fn cannot hold the directory lock.
func (d *Directory) Each(fn func(userID string, h Handle)) {
	d.mu.RLock()
	snapshot := make(map[string]Handle, len(d.handles))
	for id, h := range d.handles {
		snapshot[id] = h
	}
	d.mu.RUnlock()

	for id, h := range snapshot {
		fn(id, h)
	}
}

// Len reports the number of bound users.
func (d *Directory) Len() int {
	d.mu.RLock()
	n := len(d.handles)
	d.mu.RUnlock()
	return n
}
