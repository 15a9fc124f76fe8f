package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
)

func event(artist, track string, ms int64, endTime string) history.PlayEvent {
	return history.PlayEvent{ArtistName: artist, TrackName: track, MsPlayed: ms, EndTime: endTime}
}

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func checkEntries(t *testing.T, name string, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func twoRecordScenario() []history.PlayEvent {
	return []history.PlayEvent{
		event("A", "T1", 120000, "2023-01-01 10:00"),
		event("A", "T2", 60000, "2023-02-01 10:00"),
	}
}

func TestTwoRecordScenario(t *testing.T) {
	events := twoRecordScenario()

	if total := TotalMinutes(events); total != 3.0 {
		t.Errorf("TotalMinutes() = %v, want 3", total)
	}
	checkEntries(t, "TopArtists", TopArtists(events, 10), []Entry{{"A", 3.0}})
	checkEntries(t, "TopTracks", TopTracks(events, 10), []Entry{{"T1 by A", 2.0}, {"T2 by A", 1.0}})

	monthly, err := MonthlyTotals(events)
	if err != nil {
		t.Fatalf("MonthlyTotals() error: %v", err)
	}
	if len(monthly) != 2 || monthly["2023-01"] != 2.0 || monthly["2023-02"] != 1.0 {
		t.Errorf("MonthlyTotals() = %v", monthly)
	}
}

func TestSummarizeMatchesReducers(t *testing.T) {
	events := twoRecordScenario()
	events = append(events,
		event("B", "T3", 45000, "2023-01-15 08:30"),
		event(history.UnknownArtist, history.UnknownTrack, 1234, "2022-12-31 23:59"),
	)

	summary, err := Summarize(events, quietOptions())
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}

	if summary.TotalMinutes != TotalMinutes(events) {
		t.Errorf("TotalMinutes = %v, want %v", summary.TotalMinutes, TotalMinutes(events))
	}
	checkEntries(t, "TopArtists", summary.TopArtists, TopArtists(events, DefaultTopN))
	checkEntries(t, "TopTracks", summary.TopTracks, TopTracks(events, DefaultTopN))

	monthly, err := MonthlyTotals(events)
	if err != nil {
		t.Fatalf("MonthlyTotals() error: %v", err)
	}
	if len(summary.Monthly) != len(monthly) {
		t.Fatalf("Monthly = %v, want %v", summary.Monthly, monthly)
	}
	for k, v := range monthly {
		if summary.Monthly[k] != v {
			t.Errorf("Monthly[%s] = %v, want %v", k, summary.Monthly[k], v)
		}
	}
	if summary.Events != 4 || summary.TopN != DefaultTopN || summary.Skipped != 0 {
		t.Errorf("unexpected summary metadata: %+v", summary)
	}
}

func TestTotalMinutesIsSumOverSixtyThousand(t *testing.T) {
	events := []history.PlayEvent{
		event("A", "x", 1, ""),
		event("B", "y", 59999, ""),
		event("C", "z", 3_600_000_123, ""),
	}
	want := float64(1+59999+3_600_000_123) / 60000
	if got := TotalMinutes(events); got != want {
		t.Errorf("TotalMinutes() = %v, want %v", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	if got := TotalMinutes(nil); got != 0 {
		t.Errorf("TotalMinutes(nil) = %v", got)
	}
	if got := TopArtists(nil, 10); len(got) != 0 {
		t.Errorf("TopArtists(nil) = %v", got)
	}
	if got := TopTracks(nil, 10); len(got) != 0 {
		t.Errorf("TopTracks(nil) = %v", got)
	}
	monthly, err := MonthlyTotals(nil)
	if err != nil || len(monthly) != 0 {
		t.Errorf("MonthlyTotals(nil) = %v, %v", monthly, err)
	}

	summary, err := Summarize(nil, quietOptions())
	if err != nil {
		t.Fatalf("Summarize(nil) error: %v", err)
	}
	if summary.TotalMinutes != 0 || len(summary.TopArtists) != 0 || len(summary.TopTracks) != 0 || len(summary.Monthly) != 0 {
		t.Errorf("Summarize(nil) = %+v", summary)
	}
}

func TestTiesKeepFirstSeenOrder(t *testing.T) {
	events := []history.PlayEvent{
		event("X", "a", 60000, ""),
		event("Y", "b", 60000, ""),
		event("Z", "c", 120000, ""),
		event("W", "d", 60000, ""),
	}
	checkEntries(t, "TopArtists", TopArtists(events, 10), []Entry{
		{"Z", 2}, {"X", 1}, {"Y", 1}, {"W", 1},
	})
}

func TestTopNLimit(t *testing.T) {
	var events []history.PlayEvent
	for i := 0; i < 12; i++ {
		events = append(events, event(fmt.Sprintf("Artist %02d", i), "Song", int64(i+1)*60000, ""))
	}

	top := TopArtists(events, 10)
	if len(top) != 10 {
		t.Fatalf("Expected 10 artists, got %d", len(top))
	}
	if top[0].Name != "Artist 11" || top[9].Name != "Artist 02" {
		t.Errorf("unexpected ranking: %v", top)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Minutes > top[i-1].Minutes {
			t.Errorf("ranking not descending at %d: %v", i, top)
		}
	}

	if all := TopArtists(events, 0); len(all) != 12 {
		t.Errorf("TopArtists(n=0) should return all 12, got %d", len(all))
	}
}

func TestUnknownKeys(t *testing.T) {
	events := []history.PlayEvent{
		event(history.UnknownArtist, history.UnknownTrack, 60000, "2023-01-01 00:00"),
	}
	checkEntries(t, "TopArtists", TopArtists(events, 10), []Entry{{"Unknown Artist", 1}})
	checkEntries(t, "TopTracks", TopTracks(events, 10), []Entry{{"Unknown Track by Unknown Artist", 1}})
}

func TestMalformedTimestamp(t *testing.T) {
	events := append(twoRecordScenario(), event("B", "T9", 60000, "not-a-date"))

	_, err := MonthlyTotals(events)
	var terr *history.TimestampError
	if !errors.As(err, &terr) {
		t.Fatalf("MonthlyTotals() error = %v, want *history.TimestampError", err)
	}
	if terr.Value != "not-a-date" {
		t.Errorf("TimestampError.Value = %q", terr.Value)
	}

	// The other reducers never look at endTime.
	if total := TotalMinutes(events); total != 4.0 {
		t.Errorf("TotalMinutes() = %v, want 4", total)
	}
	checkEntries(t, "TopArtists", TopArtists(events, 10), []Entry{{"A", 3}, {"B", 1}})
	if len(TopTracks(events, 10)) != 3 {
		t.Errorf("TopTracks() should have 3 entries")
	}

	if _, err := Summarize(events, quietOptions()); !errors.As(err, &terr) {
		t.Errorf("Summarize() error = %v, want *history.TimestampError", err)
	}
}

func TestSummarizeSkipBadTimestamps(t *testing.T) {
	events := append(twoRecordScenario(), event("B", "T9", 60000, "not-a-date"))

	opts := quietOptions()
	opts.SkipBadTimestamps = true
	opts.TopN = 1
	summary, err := Summarize(events, opts)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}

	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.TotalMinutes != 4.0 {
		t.Errorf("TotalMinutes = %v, want 4", summary.TotalMinutes)
	}
	checkEntries(t, "TopArtists", summary.TopArtists, []Entry{{"A", 3}})
	if len(summary.Monthly) != 2 || summary.Monthly["2023-01"] != 2 || summary.Monthly["2023-02"] != 1 {
		t.Errorf("Monthly = %v", summary.Monthly)
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	events := []history.PlayEvent{
		event("X", "a", 1000, "2021-03-01 00:00"),
		event("Y", "b", 1000, "2021-04-01 00:00"),
		event("X", "b", 1000, "2021-03-02 00:00"),
		event("Y", "a", 1000, "2021-05-01 00:00"),
	}
	first, err := Summarize(events, quietOptions())
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Summarize(events, quietOptions())
		if err != nil {
			t.Fatalf("Summarize() error: %v", err)
		}
		checkEntries(t, "TopArtists", again.TopArtists, first.TopArtists)
		checkEntries(t, "TopTracks", again.TopTracks, first.TopTracks)
	}
}

func TestSortedMonths(t *testing.T) {
	months := SortedMonths(map[string]float64{"2023-10": 1, "2022-12": 2, "2023-02": 3})
	expected := []string{"2022-12", "2023-02", "2023-10"}
	for i := range expected {
		if months[i] != expected[i] {
			t.Errorf("SortedMonths()[%d] = %s, want %s", i, months[i], expected[i])
		}
	}
}

func TestBetween(t *testing.T) {
	events := []history.PlayEvent{
		event("A", "a", 1, "2022-12-31 23:59"),
		event("B", "b", 1, "2023-01-01 00:00"),
		event("C", "c", 1, "2023-01-31 23:59"),
		event("D", "d", 1, "2023-02-01 00:00"),
	}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	kept, err := Between(events, start, end, quietOptions())
	if err != nil {
		t.Fatalf("Between() error: %v", err)
	}
	if len(kept) != 2 || kept[0].ArtistName != "B" || kept[1].ArtistName != "C" {
		t.Errorf("Between() = %+v", kept)
	}

	bad := append(events, event("E", "e", 1, "yesterday"))
	if _, err := Between(bad, start, end, quietOptions()); err == nil {
		t.Errorf("Between() should fail on a malformed endTime")
	}

	opts := quietOptions()
	opts.SkipBadTimestamps = true
	kept, err = Between(bad, start, end, opts)
	if err != nil || len(kept) != 2 {
		t.Errorf("Between() lenient = %+v, %v", kept, err)
	}
}
