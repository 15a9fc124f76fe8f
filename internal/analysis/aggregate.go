package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
)

// tally sums milliseconds per key, remembering the order keys were first seen
// so that ties rank in that order.
type tally struct {
	ms    map[string]int64
	order []string
}

func newTally() *tally {
	return &tally{ms: make(map[string]int64)}
}

func (t *tally) add(key string, ms int64) {
	if _, ok := t.ms[key]; !ok {
		t.order = append(t.order, key)
	}
	t.ms[key] += ms
}

// top returns the n largest buckets in minutes. n <= 0 returns all of them.
func (t *tally) top(n int) []Entry {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.ms[keys[i]] > t.ms[keys[j]]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Name: k, Minutes: toMinutes(t.ms[k])})
	}
	return entries
}

func (t *tally) minutes() map[string]float64 {
	out := make(map[string]float64, len(t.ms))
	for k, ms := range t.ms {
		out[k] = toMinutes(ms)
	}
	return out
}

func toMinutes(ms int64) float64 {
	return float64(ms) / msPerMinute
}

// TotalMinutes is the combined play time of all events.
func TotalMinutes(events []history.PlayEvent) float64 {
	var ms int64
	for _, e := range events {
		ms += e.MsPlayed
	}
	return toMinutes(ms)
}

// TopArtists ranks artists by total play time.
func TopArtists(events []history.PlayEvent, n int) []Entry {
	t := newTally()
	for _, e := range events {
		t.add(e.ArtistName, e.MsPlayed)
	}
	return t.top(n)
}

// TopTracks ranks tracks, keyed "track by artist", by total play time.
func TopTracks(events []history.PlayEvent, n int) []Entry {
	t := newTally()
	for _, e := range events {
		t.add(e.TrackKey(), e.MsPlayed)
	}
	return t.top(n)
}

// MonthlyTotals sums play time per yyyy-mm. The first malformed endTime is
// returned as a *history.TimestampError.
func MonthlyTotals(events []history.PlayEvent) (map[string]float64, error) {
	t := newTally()
	for _, e := range events {
		month, err := e.Month()
		if err != nil {
			return nil, fmt.Errorf("monthly totals: %w", err)
		}
		t.add(month, e.MsPlayed)
	}
	return t.minutes(), nil
}

// SortedMonths returns the keys of a monthly series in chronological order.
func SortedMonths(monthly map[string]float64) []string {
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// Summarize computes every aggregate in a single pass over events.
func Summarize(events []history.PlayEvent, opts Options) (*Summary, error) {
	log := opts.logger()
	artists := newTally()
	tracks := newTally()
	months := newTally()
	var totalMs int64
	skipped := 0

	for _, e := range events {
		totalMs += e.MsPlayed
		artists.add(e.ArtistName, e.MsPlayed)
		tracks.add(e.TrackKey(), e.MsPlayed)

		month, err := e.Month()
		if err != nil {
			if !opts.SkipBadTimestamps {
				return nil, fmt.Errorf("monthly totals: %w", err)
			}
			log.Warn("skipping event with malformed endTime",
				"endTime", e.EndTime, "artist", e.ArtistName, "track", e.TrackName)
			skipped++
			continue
		}
		months.add(month, e.MsPlayed)
	}

	n := opts.topN()
	return &Summary{
		Events:       len(events),
		TotalMinutes: toMinutes(totalMs),
		TopN:         n,
		TopArtists:   artists.top(n),
		TopTracks:    tracks.top(n),
		Monthly:      months.minutes(),
		Skipped:      skipped,
	}, nil
}

// Between keeps the events that ended in [start, end).
func Between(events []history.PlayEvent, start, end time.Time, opts Options) ([]history.PlayEvent, error) {
	log := opts.logger()
	var kept []history.PlayEvent
	for _, e := range events {
		t, err := e.Time()
		if err != nil {
			if !opts.SkipBadTimestamps {
				return nil, fmt.Errorf("filtering by date: %w", err)
			}
			log.Warn("skipping event with malformed endTime", "endTime", e.EndTime)
			continue
		}
		if !t.Before(start) && t.Before(end) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}
