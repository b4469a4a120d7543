package cli

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/instance"
	"github.com/llehouerou/subrepeat/internal/mpris"
	"github.com/llehouerou/subrepeat/internal/playback"
)

// mediaKeys is the MPRIS registration and the lock that guards its bus name.
// Both are nil when another instance holds the lock or MPRIS is off.
type mediaKeys struct {
	lock    *instance.Lock
	adapter *mpris.Adapter
}

func startMediaKeys(svc playback.Service, video string, enabled bool, log *zap.SugaredLogger) *mediaKeys {
	mk := &mediaKeys{}
	if !enabled {
		return mk
	}

	lock, err := instance.Acquire(instance.DefaultPath())
	if err != nil {
		log.Infow("media keys disabled", "reason", err)
		return mk
	}

	adapter, err := mpris.New(svc, filepath.Base(video))
	if err != nil {
		log.Warnw("mpris registration failed", "error", err)
		_ = lock.Release()
		return mk
	}

	mk.lock = lock
	mk.adapter = adapter
	return mk
}

// Close unregisters from the bus before releasing the lock.
func (mk *mediaKeys) Close() {
	if mk.adapter != nil {
		_ = mk.adapter.Close()
	}
	_ = mk.lock.Release()
}
