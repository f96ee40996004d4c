// Package export renders a match as a downloadable CSV event log or a YAML
// report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// Headers is the first row of every CSV export.
var Headers = []string{
	"Timestamp",
	"Date",
	"Time",
	"Player",
	"Team",
	"Event Type",
	"Shot Type",
	"Shot Specification",
	"Description",
	"Score Sets",
	"Score Games",
	"Score Points",
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// WriteCSV writes one row per rally with the score after that rally. Times
// are rendered in UTC.
func WriteCSV(w io.Writer, m *match.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, e := range m.Events {
		if err := cw.Write(row(m, e)); err != nil {
			return fmt.Errorf("failed to write event %d: %w", e.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(m *match.Match, e match.Event) []string {
	ts := e.Timestamp.UTC()
	playerName := "Unknown"
	if p, ok := m.Player(e.PlayerID); ok {
		playerName = p.Name
	}
	teamName := ""
	if team, ok := m.TeamOf(e.PlayerID); ok {
		teamName = m.TeamName(team)
	}
	sets, games, points := ScoreColumns(e.ScoreAfter)
	return []string{
		strconv.FormatInt(ts.UnixMilli(), 10),
		ts.Format(dateLayout),
		ts.Format(timeLayout),
		playerName,
		teamName,
		e.EventType.Label(),
		string(e.ShotType),
		string(e.ShotSpecification),
		e.Description,
		sets,
		games,
		points,
	}
}

// ScoreColumns formats a score as "a-b" pairs for sets, games and points. The
// points column carries tiebreak points while a tiebreak is live.
func ScoreColumns(s scoring.Score) (sets, games, points string) {
	sets = pair(s.Sets[0], s.Sets[1])
	games = pair(s.Games[0], s.Games[1])
	if tb, ok := s.Tiebreak(); ok {
		points = pair(tb.Points[0], tb.Points[1])
	} else {
		p, _ := s.Points()
		points = p[0].String() + "-" + p[1].String()
	}
	return sets, games, points
}

func pair(a, b int) string {
	return strconv.Itoa(a) + "-" + strconv.Itoa(b)
}

// Filename is paddle_match_<date>_<team 1>_vs_<team 2>.csv with every
// character that is unsafe in a file name replaced by "-".
func Filename(m *match.Match) string {
	clean := func(s string) string {
		return unsafeFilenameChars.ReplaceAllString(s, "-")
	}
	return fmt.Sprintf("paddle_match_%s_%s_vs_%s.csv",
		m.Date.UTC().Format(dateLayout),
		clean(m.TeamName(scoring.TeamOne)),
		clean(m.TeamName(scoring.TeamTwo)),
	)
}
