// Package datetime rounds fixed-offset timestamps of the form
// YYYY-MM-DD[T| ]HH:MM:SS.mmm±HHMM to a day, hour, minute, second or
// millisecond granularity.
package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Level selects the rounding granularity.
type Level int

const (
	// LevelDay rounds to whole days.
	LevelDay Level = iota
	// LevelHour rounds to whole hours.
	LevelHour
	// LevelMinute rounds to whole minutes.
	LevelMinute
	// LevelSecond rounds to whole seconds.
	LevelSecond
	// LevelMillisecond keeps millisecond resolution.
	LevelMillisecond
)

// DefaultLevel is used when the caller does not pick a level.
const DefaultLevel = LevelSecond

var granularities = [...]time.Duration{
	LevelDay:         24 * time.Hour,
	LevelHour:        time.Hour,
	LevelMinute:      time.Minute,
	LevelSecond:      time.Second,
	LevelMillisecond: time.Millisecond,
}

var levelNames = [...]string{"day", "hour", "minute", "second", "millisecond"}

var timestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})([T ])(\d{2}):(\d{2}):(\d{2})\.(\d{3})([+-])(\d{2})(\d{2})$`,
)

// ClampLevel maps any integer onto a valid level.
func ClampLevel(level int) Level {
	if level < int(LevelDay) {
		return LevelDay
	}
	if level > int(LevelMillisecond) {
		return LevelMillisecond
	}
	return Level(level)
}

// Granularity returns the duration a level rounds to.
func (l Level) Granularity() time.Duration {
	return granularities[ClampLevel(int(l))]
}

func (l Level) String() string {
	return levelNames[ClampLevel(int(l))]
}

// Timestamp holds the literal components of a parsed timestamp.
type Timestamp struct {
	Year          int
	Month         int
	Day           int
	Hour          int
	Minute        int
	Second        int
	Millisecond   int
	Separator     byte
	OffsetMinutes int
}

// Parse matches s against the fixed-offset pattern. Calendar-invalid
// components (month 13, February 30th) do not match.
func Parse(s string) (Timestamp, bool) {
	match := timestampPattern.FindStringSubmatch(s)
	if match == nil {
		return Timestamp{}, false
	}

	n := make([]int, 0, 10)
	for _, idx := range []int{1, 2, 3, 5, 6, 7, 8, 10, 11} {
		v, err := strconv.Atoi(match[idx])
		if err != nil {
			return Timestamp{}, false
		}
		n = append(n, v)
	}

	if n[8] >= 60 || n[7] > 23 {
		return Timestamp{}, false
	}

	offset := n[7]*60 + n[8]
	if match[9] == "-" {
		offset = -offset
	}

	ts := Timestamp{
		Year:          n[0],
		Month:         n[1],
		Day:           n[2],
		Hour:          n[3],
		Minute:        n[4],
		Second:        n[5],
		Millisecond:   n[6],
		Separator:     match[4][0],
		OffsetMinutes: offset,
	}

	if fromTime(ts.Time(), ts.Separator) != ts {
		return Timestamp{}, false
	}

	return ts, true
}

// Time returns the absolute instant the timestamp denotes.
func (t Timestamp) Time() time.Time {
	zone := time.FixedZone("", t.OffsetMinutes*60)
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second,
		t.Millisecond*int(time.Millisecond), zone)
}

// String renders the timestamp in the literal format it was parsed from.
func (t Timestamp) String() string {
	sign := byte('+')
	offset := t.OffsetMinutes
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	return fmt.Sprintf("%04d-%02d-%02d%c%02d:%02d:%02d.%03d%c%02d%02d",
		t.Year, t.Month, t.Day, t.Separator, t.Hour, t.Minute, t.Second, t.Millisecond,
		sign, offset/60, offset%60)
}

// Round rounds the timestamp to the nearest multiple of the level's
// granularity, half up. The instant is moved onto the timestamp's own
// fixed-offset timeline, rounded there and moved back, so day and hour
// boundaries line up with the local clock at any offset without touching
// wall-clock fields.
func Round(t Timestamp, level Level) Timestamp {
	offset := time.Duration(t.OffsetMinutes) * time.Minute

	local := t.Time().UTC().Add(offset)
	rounded := local.Round(level.Granularity())

	out := fromTime(rounded, t.Separator)
	out.OffsetMinutes = t.OffsetMinutes

	return out
}

func fromTime(tm time.Time, sep byte) Timestamp {
	_, offset := tm.Zone()

	return Timestamp{
		Year:          tm.Year(),
		Month:         int(tm.Month()),
		Day:           tm.Day(),
		Hour:          tm.Hour(),
		Minute:        tm.Minute(),
		Second:        tm.Second(),
		Millisecond:   tm.Nanosecond() / int(time.Millisecond),
		Separator:     sep,
		OffsetMinutes: offset / 60,
	}
}
