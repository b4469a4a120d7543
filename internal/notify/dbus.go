//go:build linux

package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = "org.freedesktop.Notifications"

	appName = "subrepeat"
)

// dbusNotifier talks to the freedesktop notification service. Notices share
// one bubble: each replaces the previous unless ReplacesID says otherwise.
type dbusNotifier struct {
	obj dbus.BusObject

	mu   sync.Mutex
	last uint32
}

// New connects to the session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &dbusNotifier{obj: conn.Object(notifyDest, notifyPath)}, nil
}

// Notify shows notif and returns the server's id for it.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	replaces := notif.ReplacesID
	if replaces == 0 {
		replaces = n.last
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(notifyIface+".Notify", 0,
		appName,
		replaces,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints(notif),
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	n.last = id
	return id, nil
}

// Close dismisses a notification.
func (n *dbusNotifier) Close(id uint32) error {
	n.mu.Lock()
	if id == n.last {
		n.last = 0
	}
	n.mu.Unlock()
	return n.obj.Call(notifyIface+".CloseNotification", 0, id).Err
}

// hints builds the freedesktop hints for notif. Anything short of critical
// is transient and stays out of the notification history.
func hints(notif Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if notif.Urgency != UrgencyCritical {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}
