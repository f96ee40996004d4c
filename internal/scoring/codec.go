package scoring

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// scoreRecord is the persisted and wire shape of a Score. Points are kept as
// display strings and the tiebreak is present only while one is played.
type scoreRecord struct {
	Sets          [2]int          `json:"sets" msgpack:"sets"`
	Games         [2]int          `json:"games" msgpack:"games"`
	Points        [2]string       `json:"points" msgpack:"points"`
	Tiebreak      *tiebreakRecord `json:"tiebreak,omitempty" msgpack:"tiebreak,omitempty"`
	CurrentServer string          `json:"currentServer,omitempty" msgpack:"currentServer,omitempty"`
}

type tiebreakRecord struct {
	Points          [2]int `json:"points" msgpack:"points"`
	IsFinalTiebreak bool   `json:"isFinalTiebreak" msgpack:"isFinalTiebreak"`
}

func (s Score) record() scoreRecord {
	rec := scoreRecord{
		Sets:          s.Sets,
		Games:         s.Games,
		Points:        [2]string{Love.String(), Love.String()},
		CurrentServer: s.CurrentServer,
	}
	if tb, ok := s.Tiebreak(); ok {
		rec.Tiebreak = &tiebreakRecord{Points: tb.Points, IsFinalTiebreak: tb.Final}
		return rec
	}
	points, _ := s.Points()
	rec.Points = [2]string{points[0].String(), points[1].String()}
	return rec
}

func (rec scoreRecord) score() (Score, error) {
	s := Score{
		Sets:          rec.Sets,
		Games:         rec.Games,
		CurrentServer: rec.CurrentServer,
	}
	if rec.Tiebreak != nil {
		s.Phase = Tiebreak{Points: rec.Tiebreak.Points, Final: rec.Tiebreak.IsFinalTiebreak}
	} else {
		var play RegularPlay
		for i, raw := range rec.Points {
			p, err := ParsePoint(raw)
			if err != nil {
				return Score{}, fmt.Errorf("%w: %v", ErrInvalidScore, err)
			}
			play.Points[i] = p
		}
		s.Phase = play
	}
	if err := s.Validate(); err != nil {
		return Score{}, err
	}
	return s, nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.record())
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var rec scoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.score()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

var (
	_ msgpack.CustomEncoder = Score{}
	_ msgpack.CustomDecoder = (*Score)(nil)
)

func (s Score) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(s.record())
}

func (s *Score) DecodeMsgpack(dec *msgpack.Decoder) error {
	var rec scoreRecord
	if err := dec.Decode(&rec); err != nil {
		return err
	}
	decoded, err := rec.score()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
