package stderr

import (
	"strings"
)

// Line is one captured line of diagnostic output.
type Line struct {
	// Module is the component that printed the line when it carried a
	// prefix, e.g. "ffmpeg/video" from mpv or "main" from VLC.
	Module string
	Text   string
}

// ParseLine splits the module prefix off a player log line. mpv prints
// "[module] text"; VLC prints "[0000560c1a2b3c40] module type: text". Other
// lines are kept whole. Blank lines report false.
func ParseLine(raw string) (Line, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Line{}, false
	}
	if !strings.HasPrefix(s, "[") {
		return Line{Text: s}, true
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Line{Text: s}, true
	}
	tag := s[1:end]
	rest := strings.TrimSpace(s[end+1:])
	if rest == "" {
		return Line{Text: s}, true
	}
	if !isObjectID(tag) {
		return Line{Module: tag, Text: rest}, true
	}

	// VLC: "<module> <type>: text".
	head, text, ok := strings.Cut(rest, ": ")
	if !ok {
		return Line{Text: rest}, true
	}
	module, _, _ := strings.Cut(head, " ")
	return Line{Module: module, Text: strings.TrimSpace(text)}, true
}

func isObjectID(s string) bool {
	if len(s) < 8 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
