package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	newFlags struct {
		team1, team2   string
		location       string
		round          string
		scoringSystem  string
		thirdSetFormat string
		statistics     string
	}
	pointFlags struct {
		specification string
		description   string
	}
	exportFlags struct {
		format string
		out    string
	}
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(countersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(replayCmd)

	newCmd.Flags().StringVar(&newFlags.team1, "team1", "", "Team one players, comma separated")
	newCmd.Flags().StringVar(&newFlags.team2, "team2", "", "Team two players, comma separated")
	newCmd.Flags().StringVar(&newFlags.location, "location", "", "Where the match is played")
	newCmd.Flags().StringVar(&newFlags.round, "round", "", "Round or occasion")
	newCmd.Flags().StringVar(&newFlags.scoringSystem, "scoring", "", "no-ad or ad")
	newCmd.Flags().StringVar(&newFlags.thirdSetFormat, "third-set", "", "regular (default) or super-tiebreak")
	newCmd.Flags().StringVar(&newFlags.statistics, "statistics", "", "basic or advanced")
	newCmd.MarkFlagRequired("team1")
	newCmd.MarkFlagRequired("team2")

	pointCmd.Flags().StringVar(&pointFlags.specification, "spec", "", "Shot specification for advanced statistics")
	pointCmd.Flags().StringVar(&pointFlags.description, "desc", "", "Free text description of the rally")

	exportCmd.Flags().StringVar(&exportFlags.format, "format", "csv", "csv or yaml")
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "Write the export to this file instead of stdout")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Get the persisted match counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/counters", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches", nil)
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the unfinished match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/current", nil)
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new match",
	Example: `  padel-cli new --team1 "Ana Ruiz,Bea Gil" --team2 "Carla Sanz,Dora Vidal" --location "Club Norte"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		team1, err := pair(newFlags.team1)
		if err != nil {
			return err
		}
		team2, err := pair(newFlags.team2)
		if err != nil {
			return err
		}
		body := map[string]any{
			"team1":          team1,
			"team2":          team2,
			"location":       newFlags.location,
			"round":          newFlags.round,
			"scoringSystem":  newFlags.scoringSystem,
			"thirdSetFormat": newFlags.thirdSetFormat,
			"statisticsType": newFlags.statistics,
		}
		return performRequest(http.MethodPost, "/matches", body)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <bookingID>",
	Short: "Start a match with the line-up of a Playtomic booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matches/import/"+url.PathEscape(args[0]), nil)
	},
}

var pointCmd = &cobra.Command{
	Use:   "point <matchID> <playerID> <eventType> <shotType>",
	Short: "Record a rally",
	Long: `Record a rally. eventType is winner, unforced_error or forced_error.
Winners give the point to the player's team, errors to the opponents.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"playerId":          args[1],
			"eventType":         args[2],
			"shotType":          args[3],
			"shotSpecification": pointFlags.specification,
			"description":       pointFlags.description,
		}
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/points", body)
	},
}

var serverCmd = &cobra.Command{
	Use:   "server <matchID> <playerID>",
	Short: "Set who serves next",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/matches/"+url.PathEscape(args[0])+"/server", map[string]string{"playerId": args[1]})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <matchID>",
	Short: "Show the match summary and per player statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0])+"/stats", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <matchID>",
	Short: "Download the event log as CSV or a YAML report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFlags.format != "csv" && exportFlags.format != "yaml" {
			return fmt.Errorf("unknown format %q, expected csv or yaml", exportFlags.format)
		}
		return download("/matches/"+url.PathEscape(args[0])+"/export."+exportFlags.format, exportFlags.out)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard", nil)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <matchID>",
	Short: "Check that the event log reproduces the stored score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0])+"/replay", nil)
	},
}

func pair(s string) ([2]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]string{}, fmt.Errorf("expected two comma separated players, got %q", s)
	}
	return [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}, nil
}

func endpointURL(endpoint string) string {
	u := host + endpoint
	if dryRun {
		u += "?dry_run=true"
	}
	return u
}

func performRequest(method, endpoint string, body any) error {
	u := endpointURL(endpoint)
	fmt.Printf("Making %s request to %s\n", method, u)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}

func download(endpoint, out string) error {
	resp, err := http.Get(endpointURL(endpoint))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if out != "" {
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
