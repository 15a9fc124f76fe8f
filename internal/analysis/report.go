package analysis

import (
	"bytes"
	"fmt"
	"io"
)

// WriteText renders the summary as the plain-text listening report.
func (s *Summary) WriteText(w io.Writer) error {
	out := new(bytes.Buffer)

	fmt.Fprintf(out, "# Total minutes played: %.0f (%.1f hours / %.1f days / %.2f months)\n",
		s.TotalMinutes, s.Hours(), s.Days(), s.Months())
	fmt.Fprintf(out, "# Daily average: %.0f minutes (%.1f hours)\n",
		s.DailyAverageMinutes(), s.DailyAverageHours())

	fmt.Fprintf(out, "\n# Top %d Artists by Playtime:\n", s.TopN)
	writeRanking(out, s.TopArtists)

	fmt.Fprintf(out, "\n# Top %d Songs by Playtime:\n", s.TopN)
	writeRanking(out, s.TopTracks)

	_, err := w.Write(out.Bytes())
	return err
}

func writeRanking(out *bytes.Buffer, entries []Entry) {
	for i, e := range entries {
		fmt.Fprintf(out, "%d. %s: %.0f minutes\n", i+1, e.Name, e.Minutes)
	}
}
