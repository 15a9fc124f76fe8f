package history

import (
	"fmt"
	"time"
)

const (
	UnknownArtist = "Unknown Artist"
	UnknownTrack  = "Unknown Track"

	// EndTimeLayout is the timestamp format used by the streaming history export.
	EndTimeLayout = "2006-01-02 15:04"
	MonthLayout   = "2006-01"
)

// PlayEvent is a single normalized entry from the listening history.
type PlayEvent struct {
	ArtistName string
	TrackName  string
	EndTime    string
	MsPlayed   int64
}

// record mirrors one element of an export file. Every field is optional.
type record struct {
	ArtistName *string `json:"artistName"`
	TrackName  *string `json:"trackName"`
	EndTime    *string `json:"endTime"`
	MsPlayed   *int64  `json:"msPlayed"`
}

// normalize fills in defaults for fields that are missing or null.
func normalize(r record) PlayEvent {
	e := PlayEvent{
		ArtistName: UnknownArtist,
		TrackName:  UnknownTrack,
	}
	if r.ArtistName != nil {
		e.ArtistName = *r.ArtistName
	}
	if r.TrackName != nil {
		e.TrackName = *r.TrackName
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
	if r.MsPlayed != nil {
		e.MsPlayed = *r.MsPlayed
	}
	return e
}

// TrackKey identifies a track across artists, e.g. "Song by Artist".
func (e PlayEvent) TrackKey() string {
	return fmt.Sprintf("%s by %s", e.TrackName, e.ArtistName)
}

func (e PlayEvent) Time() (time.Time, error) {
	t, err := time.Parse(EndTimeLayout, e.EndTime)
	if err != nil {
		return time.Time{}, &TimestampError{Value: e.EndTime, Err: err}
	}
	return t, nil
}

// Month returns the yyyy-mm bucket the event ended in.
func (e PlayEvent) Month() (string, error) {
	t, err := e.Time()
	if err != nil {
		return "", err
	}
	return t.Format(MonthLayout), nil
}
