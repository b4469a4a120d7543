//go:build !linux

package notify

import "errors"

// New fails on platforms without a freedesktop notification service.
func New() (Notifier, error) {
	return nil, errors.New("desktop notifications need D-Bus")
}
