// Package scoring implements the padel scoring state machine.
//
// Every function in this package is pure: scores are plain values, Advance
// returns a new Score and never touches the one it was given.
package scoring

import (
	"errors"
	"fmt"
)

// InitialScore returns the score every match starts from.
func InitialScore() Score {
	return Score{Phase: RegularPlay{}}
}

// Advance returns the score after winner takes the point.
//
// Advance panics if winner is not a valid team or if the match described by s is
// already decided; both are caller bugs that would otherwise corrupt the score.
func Advance(s Score, winner Team, system ScoringSystem, format ThirdSetFormat) Score {
	if !winner.Valid() {
		panic(fmt.Sprintf("scoring: invalid team index %d", uint8(winner)))
	}
	if IsCompleted(s) {
		panic("scoring: point played after the match was decided")
	}

	switch p := s.Phase.(type) {
	case Tiebreak:
		return s.tiebreakPoint(p, winner, format)
	case RegularPlay:
		return s.regularPoint(p.Points, winner, system, format)
	case nil:
		return s.regularPoint([2]Point{}, winner, system, format)
	default:
		panic(fmt.Sprintf("scoring: unknown phase %T", p))
	}
}

func (s Score) tiebreakPoint(tb Tiebreak, winner Team, format ThirdSetFormat) Score {
	tb.Points[winner]++

	target := TiebreakTarget
	if tb.Final {
		target = SuperTiebreakTarget
	}
	if tb.Points[winner] < target || tb.Points[winner]-tb.Points[winner.Opponent()] < TiebreakMargin {
		s.Phase = tb
		return s
	}

	s.Sets[winner]++
	if tb.Final {
		s.Phase = RegularPlay{}
		return s
	}
	s.Games = [2]int{}
	s.Phase = s.newSetPhase(format)
	return s
}

func (s Score) regularPoint(points [2]Point, winner Team, system ScoringSystem, format ThirdSetFormat) Score {
	loser := winner.Opponent()

	switch {
	case points[winner] == Forty && points[loser] == Forty:
		if system == NoAd {
			return s.gameWon(winner, format)
		}
		points[winner], points[loser] = Advantage, Forty
	case points[winner] == Advantage:
		return s.gameWon(winner, format)
	case points[loser] == Advantage:
		points = [2]Point{Forty, Forty}
	case points[winner] == Forty:
		return s.gameWon(winner, format)
	default:
		// Love, Fifteen or Thirty: one rung up the ladder.
		points[winner]++
	}

	s.Phase = RegularPlay{Points: points}
	return s
}

// gameWon credits winner with a game and settles the set if it is over.
func (s Score) gameWon(winner Team, format ThirdSetFormat) Score {
	loser := winner.Opponent()
	s.Games[winner]++
	s.Phase = RegularPlay{}

	switch {
	case s.Games[winner] == 7, s.Games[winner] == 6 && s.Games[loser] <= 4:
		s.Sets[winner]++
		s.Games = [2]int{}
		s.Phase = s.newSetPhase(format)
	case s.Games[winner] == 6 && s.Games[loser] == 6:
		s.Phase = Tiebreak{}
	}
	return s
}

// newSetPhase is the phase that follows a completed set.
func (s Score) newSetPhase(format ThirdSetFormat) Phase {
	if s.Sets == [2]int{1, 1} && format == SuperTiebreak {
		return Tiebreak{Final: true}
	}
	return RegularPlay{}
}

// IsCompleted reports whether either team has won the match.
func IsCompleted(s Score) bool {
	return s.Sets[0] == SetsToWin || s.Sets[1] == SetsToWin
}

// Winner returns the team that won the match. The boolean is false while the
// match is still being played.
func Winner(s Score) (Team, bool) {
	switch {
	case s.Sets[0] == SetsToWin:
		return TeamOne, true
	case s.Sets[1] == SetsToWin:
		return TeamTwo, true
	default:
		return 0, false
	}
}

// Replay folds Advance over a recorded sequence of rally winners starting from
// InitialScore. Points after the match is decided are ignored.
func Replay(system ScoringSystem, format ThirdSetFormat, winners ...Team) Score {
	s := InitialScore()
	for _, w := range winners {
		if IsCompleted(s) {
			break
		}
		s = Advance(s, w, system, format)
	}
	return s
}

var ErrInvalidScore = errors.New("invalid score")

// Validate checks that s is a score the state machine could have produced.
// It is meant for scores read back from storage or the wire.
func (s Score) Validate() error {
	for i := range 2 {
		if s.Sets[i] < 0 || s.Sets[i] > SetsToWin {
			return fmt.Errorf("%w: sets %d-%d out of range", ErrInvalidScore, s.Sets[0], s.Sets[1])
		}
		if s.Games[i] < 0 || s.Games[i] > 7 {
			return fmt.Errorf("%w: games %d-%d out of range", ErrInvalidScore, s.Games[0], s.Games[1])
		}
	}
	if s.Sets[0] == SetsToWin && s.Sets[1] == SetsToWin {
		return fmt.Errorf("%w: both teams won the match", ErrInvalidScore)
	}

	switch p := s.Phase.(type) {
	case nil:
	case RegularPlay:
		for _, pt := range p.Points {
			if pt > Advantage {
				return fmt.Errorf("%w: unknown point %d", ErrInvalidScore, uint8(pt))
			}
		}
		for i, pt := range p.Points {
			if pt == Advantage && p.Points[1-i] != Forty {
				return fmt.Errorf("%w: advantage against %s", ErrInvalidScore, p.Points[1-i])
			}
		}
	case Tiebreak:
		if p.Points[0] < 0 || p.Points[1] < 0 {
			return fmt.Errorf("%w: negative tiebreak points", ErrInvalidScore)
		}
		if p.Final && s.Sets != [2]int{1, 1} {
			return fmt.Errorf("%w: final tiebreak at sets %d-%d", ErrInvalidScore, s.Sets[0], s.Sets[1])
		}
		if !p.Final && s.Games != [2]int{6, 6} {
			return fmt.Errorf("%w: tiebreak at games %d-%d", ErrInvalidScore, s.Games[0], s.Games[1])
		}
	default:
		return fmt.Errorf("%w: unknown phase %T", ErrInvalidScore, p)
	}
	return nil
}
