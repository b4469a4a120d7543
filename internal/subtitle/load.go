// Package subtitle reads subtitle files into cues.
package subtitle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	astisub "github.com/asticode/go-astisub"

	"github.com/llehouerou/subrepeat/internal/cue"
)

// ErrUnsupportedFormat is returned for extensions with no parser.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// Extensions lists the subtitle extensions Load understands, in the order
// FindSibling prefers them.
var Extensions = []string{".srt", ".ass", ".ssa", ".vtt", ".ttml", ".stl"}

// File is a loaded subtitle file.
type File struct {
	Path     string
	Encoding string
	Cues     []cue.Cue
}

// Load reads the cues of a subtitle file.
func Load(path string) ([]cue.Cue, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Cues, nil
}

// LoadFile reads a subtitle file, reporting the detected text encoding.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	f := &File{Path: path}

	var r io.Reader
	if ext == ".stl" {
		// EBU STL is binary and carries its own character table.
		r = bytes.NewReader(raw)
		f.Encoding = "binary"
	} else {
		text, enc := Decode(raw)
		r = strings.NewReader(text)
		f.Encoding = enc
	}

	f.Cues, err = Parse(r, ext)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse reads UTF-8 subtitles in the format named by ext.
func Parse(r io.Reader, ext string) ([]cue.Cue, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch strings.ToLower(ext) {
	case ".srt":
		subs, err = astisub.ReadFromSRT(r)
	case ".ass", ".ssa":
		subs, err = astisub.ReadFromSSA(r)
	case ".vtt":
		subs, err = astisub.ReadFromWebVTT(r)
	case ".ttml":
		subs, err = astisub.ReadFromTTML(r)
	case ".stl":
		subs, err = astisub.ReadFromSTL(r, astisub.STLOptions{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return toCues(subs), nil
}

func toCues(subs *astisub.Subtitles) []cue.Cue {
	cues := make([]cue.Cue, 0, len(subs.Items))
	for _, item := range subs.Items {
		cues = append(cues, cue.Cue{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  itemText(item),
		})
	}
	return cues
}

// itemText joins lines with newlines and line items with spaces.
func itemText(item *astisub.Item) string {
	var sb strings.Builder
	for i, line := range item.Lines {
		if i > 0 {
			sb.WriteRune('\n')
		}
		for j, litem := range line.Items {
			if j > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteString(strings.TrimSpace(litem.Text))
		}
	}
	return sb.String()
}

// IsSubtitle reports whether path has a supported subtitle extension.
func IsSubtitle(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// FindSibling returns a subtitle file next to videoPath sharing its base
// name, e.g. movie.srt for movie.mkv.
func FindSibling(videoPath string) (string, bool) {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	for _, ext := range Extensions {
		for _, candidate := range []string{base + ext, base + strings.ToUpper(ext)} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}
