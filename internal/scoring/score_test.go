package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regular(a, b Point) Phase {
	return RegularPlay{Points: [2]Point{a, b}}
}

// repeat returns n copies of t, handy for playing out whole games or sets.
func repeat(t Team, n int) []Team {
	out := make([]Team, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func TestInitialScore(t *testing.T) {
	s := InitialScore()

	assert.Equal(t, [2]int{0, 0}, s.Sets)
	assert.Equal(t, [2]int{0, 0}, s.Games)
	assert.Equal(t, regular(Love, Love), s.Phase)
	assert.False(t, s.InTiebreak())
	assert.Empty(t, s.CurrentServer)
	assert.False(t, IsCompleted(s))
}

func TestAdvance_PointProgression(t *testing.T) {
	t.Run("four straight points win a no-ad game", func(t *testing.T) {
		s := InitialScore()
		expected := []Point{Fifteen, Thirty, Forty}
		for _, want := range expected {
			s = Advance(s, TeamOne, NoAd, RegularThirdSet)
			assert.Equal(t, regular(want, Love), s.Phase)
		}
		s = Advance(s, TeamOne, NoAd, RegularThirdSet)

		assert.Equal(t, [2]int{1, 0}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})

	t.Run("loser's point is untouched", func(t *testing.T) {
		s := Score{Phase: regular(Fifteen, Thirty)}
		s = Advance(s, TeamOne, Ad, RegularThirdSet)
		assert.Equal(t, regular(Thirty, Thirty), s.Phase)
	})

	t.Run("forty against less wins the game", func(t *testing.T) {
		s := Score{Games: [2]int{2, 3}, Phase: regular(Thirty, Forty)}
		s = Advance(s, TeamTwo, Ad, RegularThirdSet)
		assert.Equal(t, [2]int{2, 4}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})
}

func TestAdvance_Deuce(t *testing.T) {
	deuce := Score{Phase: regular(Forty, Forty)}

	t.Run("golden point wins the game under no-ad", func(t *testing.T) {
		s := Advance(deuce, TeamTwo, NoAd, RegularThirdSet)
		assert.Equal(t, [2]int{0, 1}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})

	t.Run("advantage, back to deuce, then game under ad", func(t *testing.T) {
		s := Advance(deuce, TeamOne, Ad, RegularThirdSet)
		assert.Equal(t, regular(Advantage, Forty), s.Phase)
		assert.Equal(t, [2]int{0, 0}, s.Games)

		s = Advance(s, TeamTwo, Ad, RegularThirdSet)
		assert.Equal(t, regular(Forty, Forty), s.Phase)

		s = Advance(s, TeamOne, Ad, RegularThirdSet)
		assert.Equal(t, regular(Advantage, Forty), s.Phase)
		s = Advance(s, TeamOne, Ad, RegularThirdSet)
		assert.Equal(t, [2]int{1, 0}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})

	t.Run("advantage to team two", func(t *testing.T) {
		s := Advance(deuce, TeamTwo, Ad, RegularThirdSet)
		assert.Equal(t, regular(Forty, Advantage), s.Phase)
	})
}

func TestAdvance_SetCompletion(t *testing.T) {
	tests := []struct {
		name      string
		games     [2]int
		sets      [2]int
		format    ThirdSetFormat
		wantSets  [2]int
		wantGames [2]int
		wantPhase Phase
	}{
		{
			name:      "6-4 wins the set",
			games:     [2]int{5, 4},
			wantSets:  [2]int{1, 0},
			wantGames: [2]int{0, 0},
			wantPhase: regular(Love, Love),
		},
		{
			name:      "6-0 wins the set",
			games:     [2]int{5, 0},
			sets:      [2]int{0, 1},
			format:    RegularThirdSet,
			wantSets:  [2]int{1, 1},
			wantGames: [2]int{0, 0},
			wantPhase: regular(Love, Love),
		},
		{
			name:      "6-5 plays on",
			games:     [2]int{5, 5},
			wantSets:  [2]int{0, 0},
			wantGames: [2]int{6, 5},
			wantPhase: regular(Love, Love),
		},
		{
			name:      "7-5 wins the set",
			games:     [2]int{6, 5},
			wantSets:  [2]int{1, 0},
			wantGames: [2]int{0, 0},
			wantPhase: regular(Love, Love),
		},
		{
			name:      "set to one all opens the super tiebreak",
			games:     [2]int{5, 3},
			sets:      [2]int{0, 1},
			format:    SuperTiebreak,
			wantSets:  [2]int{1, 1},
			wantGames: [2]int{0, 0},
			wantPhase: Tiebreak{Final: true},
		},
		{
			name:      "first set under super tiebreak format stays regular",
			games:     [2]int{5, 3},
			format:    SuperTiebreak,
			wantSets:  [2]int{1, 0},
			wantGames: [2]int{0, 0},
			wantPhase: regular(Love, Love),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := tt.format
			if format == "" {
				format = RegularThirdSet
			}
			s := Score{Sets: tt.sets, Games: tt.games, Phase: regular(Forty, Fifteen)}
			s = Advance(s, TeamOne, NoAd, format)

			assert.Equal(t, tt.wantSets, s.Sets)
			assert.Equal(t, tt.wantGames, s.Games)
			assert.Equal(t, tt.wantPhase, s.Phase)
		})
	}
}

func TestAdvance_TiebreakEntry(t *testing.T) {
	s := Score{Games: [2]int{6, 5}, Phase: regular(Love, Forty)}
	s = Advance(s, TeamTwo, NoAd, RegularThirdSet)

	assert.Equal(t, [2]int{6, 6}, s.Games)
	assert.Equal(t, Tiebreak{Points: [2]int{0, 0}, Final: false}, s.Phase)
	_, live := s.Points()
	assert.False(t, live, "points are not live during a tiebreak")
}

func TestAdvance_Tiebreak(t *testing.T) {
	t.Run("points accumulate until seven", func(t *testing.T) {
		s := Score{Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{3, 5}}}
		s = Advance(s, TeamOne, NoAd, RegularThirdSet)
		assert.Equal(t, Tiebreak{Points: [2]int{4, 5}}, s.Phase)
		assert.Equal(t, [2]int{6, 6}, s.Games)
		assert.Equal(t, [2]int{0, 0}, s.Sets)
	})

	t.Run("seven needs a two point lead", func(t *testing.T) {
		s := Score{Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{6, 6}}}
		s = Advance(s, TeamOne, NoAd, RegularThirdSet)
		assert.Equal(t, Tiebreak{Points: [2]int{7, 6}}, s.Phase)
		assert.Equal(t, [2]int{0, 0}, s.Sets)

		s = Advance(s, TeamOne, NoAd, RegularThirdSet)
		assert.Equal(t, [2]int{1, 0}, s.Sets)
		assert.Equal(t, [2]int{0, 0}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})

	t.Run("7-5 to one set all under regular format resumes games", func(t *testing.T) {
		s := Score{Sets: [2]int{0, 1}, Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{6, 5}}}
		s = Advance(s, TeamOne, NoAd, RegularThirdSet)

		assert.Equal(t, [2]int{1, 1}, s.Sets)
		assert.Equal(t, [2]int{0, 0}, s.Games)
		assert.Equal(t, regular(Love, Love), s.Phase)
		assert.False(t, s.InTiebreak())
	})

	t.Run("7-5 to one set all under super tiebreak format opens the final tiebreak", func(t *testing.T) {
		s := Score{Sets: [2]int{0, 1}, Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{6, 5}}}
		s = Advance(s, TeamOne, NoAd, SuperTiebreak)

		assert.Equal(t, [2]int{1, 1}, s.Sets)
		assert.Equal(t, [2]int{0, 0}, s.Games)
		assert.Equal(t, Tiebreak{Points: [2]int{0, 0}, Final: true}, s.Phase)
	})

	t.Run("final tiebreak is played to ten", func(t *testing.T) {
		s := Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{6, 4}, Final: true}}
		s = Advance(s, TeamOne, Ad, SuperTiebreak)
		assert.Equal(t, Tiebreak{Points: [2]int{7, 4}, Final: true}, s.Phase)
		assert.False(t, IsCompleted(s))
	})

	t.Run("final tiebreak won 10-8 decides the match", func(t *testing.T) {
		s := Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{8, 8}, Final: true}}
		s = Advance(s, TeamOne, Ad, SuperTiebreak)
		assert.Equal(t, Tiebreak{Points: [2]int{9, 8}, Final: true}, s.Phase)


		s = Advance(s, TeamOne, Ad, SuperTiebreak)
		assert.Equal(t, [2]int{2, 1}, s.Sets)
		assert.False(t, s.InTiebreak())
		assert.True(t, IsCompleted(s))
		winner, ok := Winner(s)
		require.True(t, ok)
		assert.Equal(t, TeamOne, winner)
	})

	t.Run("final tiebreak at 9-9 plays on", func(t *testing.T) {
		s := Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{9, 9}, Final: true}}
		s = Advance(s, TeamTwo, NoAd, SuperTiebreak)
		assert.Equal(t, Tiebreak{Points: [2]int{9, 10}, Final: true}, s.Phase)
		assert.False(t, IsCompleted(s))
	})
}

func TestAdvance_DoesNotMutateInput(t *testing.T) {
	before := Score{Sets: [2]int{1, 0}, Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{5, 5}}, CurrentServer: "p1"}
	snapshot := before

	after := Advance(before, TeamTwo, NoAd, RegularThirdSet)

	assert.Equal(t, snapshot, before)
	assert.NotEqual(t, before, after)
	assert.Equal(t, "p1", after.CurrentServer, "current server is carried, not advanced")
}

func TestAdvance_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Advance(InitialScore(), Team(2), NoAd, RegularThirdSet)
	})
	assert.Panics(t, func() {
		Advance(Score{Sets: [2]int{2, 0}, Phase: RegularPlay{}}, TeamOne, NoAd, RegularThirdSet)
	})
}

func TestCompletionOracle(t *testing.T) {
	tests := []struct {
		sets       [2]int
		completed  bool
		wantWinner Team
	}{
		{sets: [2]int{0, 0}},
		{sets: [2]int{1, 1}},
		{sets: [2]int{1, 0}},
		{sets: [2]int{2, 0}, completed: true, wantWinner: TeamOne},
		{sets: [2]int{2, 1}, completed: true, wantWinner: TeamOne},
		{sets: [2]int{1, 2}, completed: true, wantWinner: TeamTwo},
	}
	for _, tt := range tests {
		s := Score{Sets: tt.sets, Phase: RegularPlay{}}
		assert.Equal(t, tt.completed, IsCompleted(s), "sets %v", tt.sets)
		winner, ok := Winner(s)
		assert.Equal(t, tt.completed, ok, "sets %v", tt.sets)
		if ok {
			assert.Equal(t, tt.wantWinner, winner)
		}
	}
}

func TestReplay(t *testing.T) {
	t.Run("straight sets", func(t *testing.T) {
		// 4 points a game, 6 games a set, 2 sets.
		s := Replay(NoAd, RegularThirdSet, repeat(TeamOne, 48)...)
		assert.Equal(t, [2]int{2, 0}, s.Sets)
		winner, ok := Winner(s)
		require.True(t, ok)
		assert.Equal(t, TeamOne, winner)
	})

	t.Run("points after the match are ignored", func(t *testing.T) {
		s := Replay(NoAd, RegularThirdSet, repeat(TeamTwo, 60)...)
		assert.Equal(t, [2]int{0, 2}, s.Sets)
	})

	t.Run("one set all then super tiebreak", func(t *testing.T) {
		winners := append(repeat(TeamOne, 24), repeat(TeamTwo, 24)...)
		s := Replay(Ad, SuperTiebreak, winners...)
		assert.Equal(t, [2]int{1, 1}, s.Sets)
		assert.Equal(t, Tiebreak{Final: true}, s.Phase)

		s = Replay(Ad, SuperTiebreak, append(winners, repeat(TeamTwo, 10)...)...)
		assert.Equal(t, [2]int{1, 2}, s.Sets)
		assert.True(t, IsCompleted(s))
	})

	t.Run("one set all then regular third set", func(t *testing.T) {
		winners := append(repeat(TeamOne, 24), repeat(TeamTwo, 24)...)
		s := Replay(Ad, RegularThirdSet, winners...)
		assert.Equal(t, [2]int{1, 1}, s.Sets)
		assert.Equal(t, regular(Love, Love), s.Phase)
	})

	t.Run("is deterministic", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		winners := make([]Team, 400)
		for i := range winners {
			winners[i] = Team(rng.Intn(2))
		}
		first := Replay(Ad, SuperTiebreak, winners...)
		second := Replay(Ad, SuperTiebreak, winners...)
		assert.Equal(t, first, second)
	})
}

// TestAdvance_ReachableInvariants plays many random matches and checks the
// invariants that must hold for every reachable score.
func TestAdvance_ReachableInvariants(t *testing.T) {
	configs := []struct {
		system ScoringSystem
		format ThirdSetFormat
	}{
		{NoAd, RegularThirdSet},
		{NoAd, SuperTiebreak},
		{Ad, RegularThirdSet},
		{Ad, SuperTiebreak},
	}
	rng := rand.New(rand.NewSource(42))

	for _, cfg := range configs {
		for range 50 {
			s := InitialScore()
			for !IsCompleted(s) {
				next := Advance(s, Team(rng.Intn(2)), cfg.system, cfg.format)

				require.NoError(t, next.Validate())
				assert.False(t, next.Sets[0] == SetsToWin && next.Sets[1] == SetsToWin)

				prevTB, prevOK := s.Tiebreak()
				nextTB, nextOK := next.Tiebreak()
				if prevOK && nextOK && s.Sets == next.Sets {
					assert.GreaterOrEqual(t, nextTB.Points[0], prevTB.Points[0])
					assert.GreaterOrEqual(t, nextTB.Points[1], prevTB.Points[1])
				}

				_, hasWinner := Winner(next)
				assert.Equal(t, IsCompleted(next), hasWinner)
				s = next
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		score Score
		ok    bool
	}{
		{name: "initial", score: InitialScore(), ok: true},
		{name: "advantage against forty", score: Score{Phase: regular(Advantage, Forty)}, ok: true},
		{name: "both won", score: Score{Sets: [2]int{2, 2}}},
		{name: "three sets", score: Score{Sets: [2]int{3, 0}}},
		{name: "negative games", score: Score{Games: [2]int{-1, 0}}},
		{name: "advantage against thirty", score: Score{Phase: regular(Advantage, Thirty)}},
		{name: "final tiebreak before one set all", score: Score{Sets: [2]int{1, 0}, Phase: Tiebreak{Final: true}}},
		{name: "negative tiebreak", score: Score{Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{-1, 0}}}},
		{name: "tiebreak at six all", score: Score{Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{3, 2}}}, ok: true},
		{name: "tiebreak before six all", score: Score{Games: [2]int{6, 5}, Phase: Tiebreak{Points: [2]int{3, 2}}}},
		{name: "super tiebreak", score: Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{8, 9}, Final: true}}, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.score.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidScore)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	system, err := ParseScoringSystem("ad")
	require.NoError(t, err)
	assert.Equal(t, Ad, system)
	_, err = ParseScoringSystem("golden")
	assert.Error(t, err)

	format, err := ParseThirdSetFormat("super-tiebreak")
	require.NoError(t, err)
	assert.Equal(t, SuperTiebreak, format)
	_, err = ParseThirdSetFormat("")
	assert.Error(t, err)
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "sets 1-0, games 3-2, points 40-Ad", Score{Sets: [2]int{1, 0}, Games: [2]int{3, 2}, Phase: regular(Forty, Advantage)}.String())
	assert.Equal(t, "sets 1-1, games 0-0, super tiebreak 4-2", Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{4, 2}, Final: true}}.String())
}
