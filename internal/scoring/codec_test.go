package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestScoreJSON(t *testing.T) {
	t.Run("regular play uses display points and omits the tiebreak", func(t *testing.T) {
		s := Score{Sets: [2]int{1, 0}, Games: [2]int{3, 2}, Phase: regular(Forty, Advantage), CurrentServer: "p3"}
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"sets":[1,0],"games":[3,2],"points":["40","Ad"],"currentServer":"p3"}`, string(data))

		var decoded Score
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, s, decoded)
	})

	t.Run("tiebreak is carried as its own object", func(t *testing.T) {
		s := Score{Sets: [2]int{1, 1}, Phase: Tiebreak{Points: [2]int{4, 6}, Final: true}}
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"sets":[1,1],"games":[0,0],"points":["0","0"],"tiebreak":{"points":[4,6],"isFinalTiebreak":true}}`, string(data))

		var decoded Score
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, s, decoded)
	})

	t.Run("rejects scores the state machine cannot produce", func(t *testing.T) {
		var s Score
		err := json.Unmarshal([]byte(`{"sets":[0,0],"games":[0,0],"points":["Ad","15"]}`), &s)
		assert.ErrorIs(t, err, ErrInvalidScore)

		err = json.Unmarshal([]byte(`{"sets":[2,2],"games":[0,0],"points":["0","0"]}`), &s)
		assert.ErrorIs(t, err, ErrInvalidScore)

		err = json.Unmarshal([]byte(`{"sets":[0,0],"games":[0,0],"points":["0","20"]}`), &s)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})
}

func TestScoreMsgpack(t *testing.T) {
	s := Score{Sets: [2]int{0, 1}, Games: [2]int{6, 6}, Phase: Tiebreak{Points: [2]int{3, 2}}}

	data, err := msgpack.Marshal(s)
	require.NoError(t, err)

	var decoded Score
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}
