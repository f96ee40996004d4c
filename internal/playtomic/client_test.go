package playtomic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBooking(t *testing.T) {
	// Sample JSON response from the Playtomic API
	mockJSONResponse := `{
		"owner_id": "user-123",
		"start_date": "2025-07-09T18:00:00",
		"game_status": "PENDING",
		"resource_name": "Court 1",
		"tenant": { "tenant_id": "tenant-abc", "tenant_name": "Padel Club" },
		"teams": [
			{ "team_id": "0", "players": [
				{ "user_id": "user-123", "name": "Ana Ruiz", "level_value": 3.5 },
				{ "user_id": "user-456", "name": "Bea Gil" }
			]},
			{ "team_id": "1", "players": [
				{ "user_id": "user-789", "name": "Carla Sanz" },
				{ "user_id": "user-012", "name": " Dora Vidal " }
			]}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	// Create our APIClient and point it to the mock server
	c := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // Dummy client, not used in this specific test
		BaseURL:    server.URL,
	}

	booking, err := c.GetBooking(context.Background(), "match-abc")
	require.NoError(t, err)
	assert.Equal(t, "match-abc", booking.MatchID)
	assert.Equal(t, "Padel Club, Court 1", booking.Location())
	assert.Equal(t, GameStatusPending, booking.GameStatus)
	assert.Equal(t, 2025, booking.Start.Year())
	assert.Equal(t, 18, booking.Start.Hour())

	lineUp, err := booking.LineUp()
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", lineUp[0][0].Name)
	assert.Equal(t, 3.5, lineUp[0][0].Level)
	assert.Equal(t, "Dora Vidal", lineUp[1][1].Name)
}

func TestGetBooking_NonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	c := APIClient{httpClient: server.Client(), apiClient: client.NewClient(), BaseURL: server.URL}
	_, err := c.GetBooking(context.Background(), "missing")
	assert.Error(t, err)
}

func TestLineUp_Incomplete(t *testing.T) {
	tests := map[string]Booking{
		"one team":      {Teams: []Team{{Players: []Player{{Name: "A"}, {Name: "B"}}}}},
		"three players": {Teams: []Team{{Players: []Player{{Name: "A"}, {Name: "B"}}}, {Players: []Player{{Name: "C"}}}}},
		"blank name":    {Teams: []Team{{Players: []Player{{Name: "A"}, {Name: "B"}}}, {Players: []Player{{Name: "C"}, {Name: ""}}}}},
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := b.LineUp()
			assert.ErrorIs(t, err, ErrIncompleteLineUp)
		})
	}
}
