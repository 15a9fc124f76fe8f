package cmd

import (
	"fmt"
	"regexp"
	"time"
)

// A dateFormat is one accepted shape of date argument. next returns the start
// of the following period, so a lone argument covers the whole year, month or day.
type dateFormat struct {
	pattern *regexp.Regexp
	layout  string
	next    func(time.Time) time.Time
}

var dateFormats = []dateFormat{
	{regexp.MustCompile(`^\d{4}$`), "2006", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
}

type ParsedDate struct {
	Date time.Time
	End  time.Time
}

// dateRange is a half-open interval. The zero value means no filtering.
type dateRange struct {
	Start time.Time
	End   time.Time
}

func (r dateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r dateRange) String() string {
	const layout = "2006-01-02"
	return fmt.Sprintf("%s to %s", r.Start.Format(layout), r.End.Format(layout))
}

// parseDateRangeFromArgs accepts zero, one or two date arguments.
func parseDateRangeFromArgs(args []string) (r dateRange, err error) {
	switch len(args) {
	case 0:
		return

	case 1:
		r.Start, r.End, err = getImplicitDateRange(args[0])

	case 2:
		r.Start, r.End, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected at most two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}
	return date.Date, date.End, nil
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	if !endParsed.Date.After(startParsed.Date) {
		err = fmt.Errorf("End date %q must be after start date %q", endString, startString)
		return
	}
	return startParsed.Date, endParsed.Date, nil
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	for _, f := range dateFormats {
		if !f.pattern.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(f.layout, ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring %q: %w", ds, err)
			return
		}
		date.End = f.next(date.Date)
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
