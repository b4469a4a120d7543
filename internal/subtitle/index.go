package subtitle

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/cue"
)

// IndexOptions control how a subtitle file becomes a cue index.
type IndexOptions struct {
	// MergeSymbol joins cues split across entries. Empty disables merging.
	MergeSymbol string
	Shift       time.Duration
	Log         *zap.SugaredLogger
}

// LoadIndex reads path and builds the index the scheduler runs on.
// Malformed cues are dropped and logged; a file with no usable cue is an
// error wrapping cue.ErrEmpty.
func LoadIndex(path string, opts IndexOptions) (*cue.Index, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	idx, errs := cue.NewIndex(f.Cues)
	for _, e := range errs {
		log.Warnw("dropping malformed cue", "file", path, "error", e)
	}
	if idx.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), cue.ErrEmpty)
	}

	idx = idx.MergedAdjacent(opts.MergeSymbol).Shifted(opts.Shift)
	log.Infow("subtitles loaded",
		"file", path,
		"encoding", f.Encoding,
		"cues", idx.Len(),
		"dropped", len(errs),
		"shift", opts.Shift,
	)
	return idx, nil
}
