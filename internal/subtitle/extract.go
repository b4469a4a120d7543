package subtitle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoSubtitleStream is returned when a container has no text subtitles.
var ErrNoSubtitleStream = errors.New("no subtitle stream")

// Stream describes one subtitle stream of a container.
type Stream struct {
	Index    int // position among the container's subtitle streams
	Codec    string
	Language string
	Title    string
}

type probeOutput struct {
	Streams []struct {
		CodecType string            `json:"codec_type"`
		CodecName string            `json:"codec_name"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

// bitmapCodecs cannot be converted to text cues.
var bitmapCodecs = map[string]bool{
	"hdmv_pgs_subtitle": true,
	"dvd_subtitle":      true,
	"dvb_subtitle":      true,
	"xsub":              true,
}

// ProbeStreams lists the text subtitle streams of a video file.
func ProbeStreams(videoPath string) ([]Stream, error) {
	raw, err := ffmpeg.Probe(videoPath, ffmpeg.KwArgs{"select_streams": "s"})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(raw)
}

func parseProbe(raw string) ([]Stream, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	var streams []Stream
	n := 0
	for _, s := range out.Streams {
		if s.CodecType != "subtitle" {
			continue
		}
		if !bitmapCodecs[s.CodecName] {
			streams = append(streams, Stream{
				Index:    n,
				Codec:    s.CodecName,
				Language: s.Tags["language"],
				Title:    s.Tags["title"],
			})
		}
		n++
	}
	return streams, nil
}

// ExtractEmbedded writes the first text subtitle stream of videoPath to dst.
// The output format follows dst's extension.
func ExtractEmbedded(ctx context.Context, videoPath, dst string) error {
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video file not found: %w", err)
	}

	streams, err := ProbeStreams(videoPath)
	if err != nil {
		return err
	}
	if len(streams) == 0 {
		return ErrNoSubtitleStream
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", streams[0].Index),
		"vn":  "", // No video
		"an":  "", // No audio
	}
	if strings.EqualFold(filepath.Ext(dst), ".srt") {
		kwargs["c:s"] = "srt"
	}

	cmd := ffmpeg.Input(videoPath).
		Output(dst, kwargs).
		OverWriteOutput().
		Compile()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("ffmpeg extraction failed: %w: %s", err, lastLine(stderr.String()))
		}
		return nil
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		_ = os.Remove(dst)
		return ctx.Err()
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ExtractedPath returns where ExtractEmbedded output for videoPath is cached.
func ExtractedPath(cacheDir, videoPath string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(cacheDir, base+".srt")
}
