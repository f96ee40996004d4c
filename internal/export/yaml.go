package export

import (
	"io"
	"time"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document produced by WriteYAML.
type Report struct {
	Match   MatchMetadata       `yaml:"Match"`
	Teams   []TeamReport        `yaml:"Teams"`
	Score   ScoreReport         `yaml:"Score"`
	Summary stats.Summary       `yaml:"Summary"`
	Players []stats.PlayerStats `yaml:"Players"`
}

type MatchMetadata struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Date           string `yaml:"date"`
	Location       string `yaml:"location"`
	Round          string `yaml:"round"`
	ScoringSystem  string `yaml:"scoring system"`
	ThirdSetFormat string `yaml:"third set format"`
	Statistics     string `yaml:"statistics"`
	Completed      bool   `yaml:"completed"`
}

type TeamReport struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Players []string `yaml:"players"`
}

type ScoreReport struct {
	Sets          string `yaml:"sets"`
	Games         string `yaml:"games"`
	Points        string `yaml:"points"`
	InTiebreak    bool   `yaml:"tiebreak,omitempty"`
	CurrentServer string `yaml:"server,omitempty"`
}

// BuildReport collects everything WriteYAML renders.
func BuildReport(m *match.Match) Report {
	sets, games, points := ScoreColumns(m.Score)
	r := Report{
		Match: MatchMetadata{
			ID:             m.ID,
			Title:          m.Title(),
			Date:           m.Date.UTC().Format(time.RFC3339),
			Location:       m.Location,
			Round:          m.Round,
			ScoringSystem:  string(m.ScoringSystem),
			ThirdSetFormat: string(m.ThirdSetFormat),
			Statistics:     string(m.StatisticsType),
			Completed:      m.IsCompleted,
		},
		Score: ScoreReport{
			Sets:          sets,
			Games:         games,
			Points:        points,
			InTiebreak:    m.Score.InTiebreak(),
			CurrentServer: m.Score.CurrentServer,
		},
		Summary: stats.Summarize(m),
		Players: stats.ForAllPlayers(m),
	}
	for i, team := range m.Teams {
		r.Teams = append(r.Teams, TeamReport{
			ID:      team.ID,
			Name:    m.TeamName(scoring.Team(i)),
			Players: []string{team.Players[0].Name, team.Players[1].Name},
		})
	}
	return r
}

// WriteYAML encodes the match report with a two space indent.
func WriteYAML(w io.Writer, m *match.Match) error {
	report := BuildReport(m)
	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(&report); err != nil {
		return err
	}
	return yamlEncoder.Close()
}
