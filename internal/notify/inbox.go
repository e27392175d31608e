package notify

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
)

// InboxLimit is how many notifications the in-app list keeps.
const InboxLimit = 50

// Inbox is the in-app notification list, newest first. Each change re-reads
// the persisted list first so several processes can share it; if storage
// fails the in-memory list keeps working for this process.
type Inbox struct {
	kv  db.KV
	log *log.Logger

	mu    sync.Mutex
	items []model.Notification
}

func NewInbox(kv db.KV, l *log.Logger) *Inbox {
	in := &Inbox{kv: kv, log: l}
	in.mu.Lock()
	in.reload()
	in.mu.Unlock()
	return in
}

// Add prepends n and trims the list to InboxLimit.
func (in *Inbox) Add(n model.Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reload()
	in.items = append([]model.Notification{n}, in.items...)
	if len(in.items) > InboxLimit {
		in.items = in.items[:InboxLimit]
	}
	in.save()
}

// MarkRead flags one notification as read; unknown ids are ignored.
func (in *Inbox) MarkRead(id string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reload()
	for i := range in.items {
		if in.items[i].ID == id {
			in.items[i].Read = true
			in.save()
			return true
		}
	}
	return false
}

func (in *Inbox) MarkAllRead() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reload()
	for i := range in.items {
		in.items[i].Read = true
	}
	in.save()
}

func (in *Inbox) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = nil
	in.save()
}

// List returns a copy of the notifications, newest first.
func (in *Inbox) List() []model.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reload()
	return append([]model.Notification(nil), in.items...)
}

func (in *Inbox) Unread() int {
	n := 0
	for _, item := range in.List() {
		if !item.Read {
			n++
		}
	}
	return n
}

func (in *Inbox) reload() {
	if in.kv == nil {
		return
	}
	raw, err := in.kv.Get(db.KeyNotifications)
	if errors.Is(err, db.ErrNotFound) {
		return
	}
	if err != nil {
		in.logf("[ERROR] Cannot read notifications: %s\n", err.Error())
		return
	}
	var items []model.Notification
	if err := json.Unmarshal(raw, &items); err != nil {
		in.logf("[WARN] Discarding malformed notification list: %s\n", err.Error())
		return
	}
	in.items = items
}

func (in *Inbox) save() {
	if in.kv == nil {
		return
	}
	raw, err := json.Marshal(in.items)
	if err != nil {
		in.logf("[ERROR] Cannot encode notifications: %s\n", err.Error())
		return
	}
	if err := in.kv.Put(db.KeyNotifications, raw); err != nil {
		in.logf("[ERROR] Cannot save notifications: %s\n", err.Error())
	}
}

func (in *Inbox) logf(format string, args ...any) {
	if in.log != nil {
		in.log.Printf(format, args...)
	}
}
