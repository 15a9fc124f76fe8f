package analysis

import "log/slog"

const (
	DefaultTopN = 10

	msPerMinute = 1000 * 60

	// Average length of a Gregorian month, in days.
	daysPerMonth = 30.436875
	daysPerYear  = 365
)

// Entry is one ranked bucket, e.g. an artist or a track.
type Entry struct {
	Name    string  `yaml:"name"`
	Minutes float64 `yaml:"minutes"`
}

// Summary holds every aggregate computed from a listening history.
type Summary struct {
	Events       int                `yaml:"events"`
	TotalMinutes float64            `yaml:"total_minutes"`
	TopN         int                `yaml:"top_n"`
	TopArtists   []Entry            `yaml:"top_artists"`
	TopTracks    []Entry            `yaml:"top_tracks"`
	Monthly      map[string]float64 `yaml:"monthly_minutes"`

	// Events left out of Monthly because their endTime didn't parse.
	Skipped int `yaml:"skipped_timestamps,omitempty"`
}

func (s *Summary) Hours() float64 {
	return s.TotalMinutes / 60
}

func (s *Summary) Days() float64 {
	return s.Hours() / 24
}

func (s *Summary) Months() float64 {
	return s.Days() / daysPerMonth
}

func (s *Summary) DailyAverageMinutes() float64 {
	return s.TotalMinutes / daysPerYear
}

func (s *Summary) DailyAverageHours() float64 {
	return s.Hours() / daysPerYear
}

type Options struct {
	// Number of artists and tracks to keep. Zero means DefaultTopN.
	TopN int

	// Leave events with a malformed endTime out of the monthly totals instead
	// of failing.
	SkipBadTimestamps bool

	Logger *slog.Logger
}

func (o Options) topN() int {
	if o.TopN <= 0 {
		return DefaultTopN
	}
	return o.TopN
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
