package scoring

import (
	"fmt"
)

const (
	// SetsToWin is the number of sets that decides a best-of-three match.
	SetsToWin = 2
	// TiebreakTarget is the point target of a 6-6 tiebreak.
	TiebreakTarget = 7
	// SuperTiebreakTarget is the point target of the deciding tiebreak played instead of a third set.
	SuperTiebreakTarget = 10
	// TiebreakMargin is the lead a team needs to close out any tiebreak.
	TiebreakMargin = 2
)

// Team identifies one of the two sides of a doubles match by index.
type Team uint8

const (
	TeamOne Team = 0
	TeamTwo Team = 1
)

// Valid reports whether t is one of the two team indexes.
func (t Team) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	return 1 - t
}

func (t Team) String() string {
	switch t {
	case TeamOne:
		return "team 1"
	case TeamTwo:
		return "team 2"
	default:
		return fmt.Sprintf("team(%d)", uint8(t))
	}
}

// Point is a rung on the in-game point ladder.
type Point uint8

const (
	Love Point = iota
	Fifteen
	Thirty
	Forty
	Advantage
)

var pointNames = [...]string{
	Love:      "0",
	Fifteen:   "15",
	Thirty:    "30",
	Forty:     "40",
	Advantage: "Ad",
}

func (p Point) String() string {
	if p > Advantage {
		return fmt.Sprintf("Point(%d)", uint8(p))
	}
	return pointNames[p]
}

// ParsePoint converts the display form ("0", "15", "30", "40", "Ad") back to a Point.
func ParsePoint(s string) (Point, error) {
	for p, name := range pointNames {
		if name == s {
			return Point(p), nil
		}
	}
	return Love, fmt.Errorf("unknown point value %q", s)
}

// ScoringSystem decides what happens at deuce.
type ScoringSystem string

const (
	// NoAd awards the game to whoever wins the point at 40-40 (golden point).
	NoAd ScoringSystem = "no-ad"
	// Ad plays traditional advantage after deuce.
	Ad ScoringSystem = "ad"
)

func (s ScoringSystem) Valid() bool {
	return s == NoAd || s == Ad
}

// ParseScoringSystem validates a configured scoring system.
func ParseScoringSystem(s string) (ScoringSystem, error) {
	if v := ScoringSystem(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("unknown scoring system %q", s)
}

// ThirdSetFormat decides how a match level at one set all is decided.
type ThirdSetFormat string

const (
	// RegularThirdSet plays a normal third set, with its own 6-6 tiebreak.
	RegularThirdSet ThirdSetFormat = "regular"
	// SuperTiebreak replaces the third set with a single tiebreak to 10.
	SuperTiebreak ThirdSetFormat = "super-tiebreak"
)

func (f ThirdSetFormat) Valid() bool {
	return f == RegularThirdSet || f == SuperTiebreak
}

// ParseThirdSetFormat validates a configured third set format.
func ParseThirdSetFormat(s string) (ThirdSetFormat, error) {
	if v := ThirdSetFormat(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("unknown third set format %q", s)
}

// Phase is the live part of a game: either regular point play or a tiebreak.
// Only RegularPlay and Tiebreak implement it.
type Phase interface {
	isPhase()
}

// RegularPlay holds the in-game points of both teams.
type RegularPlay struct {
	Points [2]Point
}

// Tiebreak holds raw tiebreak point counts. Final marks the deciding tiebreak
// played instead of a third set.
type Tiebreak struct {
	Points [2]int
	Final  bool
}

func (RegularPlay) isPhase() {}
func (Tiebreak) isPhase()    {}

// Score is an immutable snapshot of a match score. All fields are values, so a
// copy of a Score never shares state with the original.
type Score struct {
	Sets  [2]int
	Games [2]int
	Phase Phase
	// CurrentServer is informational only and is never advanced by Advance.
	CurrentServer string
}

// Points returns the in-game points, and false while a tiebreak is being played.
func (s Score) Points() ([2]Point, bool) {
	switch p := s.Phase.(type) {
	case RegularPlay:
		return p.Points, true
	case nil:
		return [2]Point{}, true
	default:
		return [2]Point{}, false
	}
}

// Tiebreak returns the live tiebreak, if any.
func (s Score) Tiebreak() (Tiebreak, bool) {
	tb, ok := s.Phase.(Tiebreak)
	return tb, ok
}

// InTiebreak reports whether a tiebreak is being played.
func (s Score) InTiebreak() bool {
	_, ok := s.Phase.(Tiebreak)
	return ok
}

// WithServer returns a copy of s with the current server set.
func (s Score) WithServer(playerID string) Score {
	s.CurrentServer = playerID
	return s
}

func (s Score) String() string {
	base := fmt.Sprintf("sets %d-%d, games %d-%d", s.Sets[0], s.Sets[1], s.Games[0], s.Games[1])
	if tb, ok := s.Tiebreak(); ok {
		kind := "tiebreak"
		if tb.Final {
			kind = "super tiebreak"
		}
		return fmt.Sprintf("%s, %s %d-%d", base, kind, tb.Points[0], tb.Points[1])
	}
	points, _ := s.Points()
	return fmt.Sprintf("%s, points %s-%s", base, points[0], points[1])
}
