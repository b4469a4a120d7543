package config

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var errRepeatRange = errors.New("must be a whole number of at least 1")

// maxDelay bounds user-entered shifts to something a subtitle file can use.
const maxDelay = 24 * time.Hour

// ParseRepeat parses a user-entered repeat count. Invalid input yields
// DefaultRepeat and an *InvalidConfigurationError.
func ParseRepeat(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultRepeat, &InvalidConfigurationError{Key: "repeat", Value: s, Err: errRepeatRange}
	}
	if n < 1 {
		return DefaultRepeat, &InvalidConfigurationError{Key: "repeat", Value: s, Err: errRepeatRange}
	}
	return n, nil
}

// ParseDelay parses a signed number of seconds, e.g. "-1.5". A trailing "s"
// and a comma decimal separator are accepted. Invalid input yields zero and
// an *InvalidConfigurationError.
func ParseDelay(s string) (time.Duration, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "s")
	s = strings.Replace(s, ",", ".", 1)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidConfigurationError{Key: "delay", Value: raw, Err: errors.New("must be a number of seconds")}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxDelay.Seconds() {
		return 0, &InvalidConfigurationError{Key: "delay", Value: raw, Err: errors.New("out of range")}
	}
	return secondsToDuration(f), nil
}

func secondsToDuration(f float64) time.Duration {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxDelay.Seconds() {
		return 0
	}
	return time.Duration(math.Round(f * float64(time.Second/time.Millisecond))) * time.Millisecond
}
