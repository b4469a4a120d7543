package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/subtitle"
)

// resolveSubtitle picks the subtitle file for video: the explicit argument,
// a file next to the video, or the first embedded text stream extracted to
// the cache. The result is absolute.
func resolveSubtitle(ctx context.Context, video, explicit string, log *zap.SugaredLogger) (string, error) {
	if explicit != "" {
		path, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve subtitle path: %w", err)
		}
		return path, nil
	}

	if path, ok := subtitle.FindSibling(video); ok {
		log.Infow("using subtitle next to video", "path", path)
		return filepath.Abs(path)
	}

	dst := subtitle.ExtractedPath(cacheDir(), video)
	if fresh(dst, video) {
		log.Infow("using previously extracted subtitles", "path", dst)
		return dst, nil
	}

	log.Infow("extracting embedded subtitles", "video", video, "dst", dst)
	if err := subtitle.ExtractEmbedded(ctx, video, dst); err != nil {
		if errors.Is(err, subtitle.ErrNoSubtitleStream) {
			err = fmt.Errorf("no subtitle file beside the video and %w", err)
		}
		return "", errmsg.Wrap(errmsg.OpExtract, filepath.Base(video), err)
	}
	return dst, nil
}

func cacheDir() string {
	return filepath.Join(xdg.CacheHome, "subrepeat")
}

// fresh reports whether path exists and is newer than its source.
func fresh(path, source string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}
	src, err := os.Stat(source)
	if err != nil {
		return false
	}
	return !info.ModTime().Before(src.ModTime())
}
