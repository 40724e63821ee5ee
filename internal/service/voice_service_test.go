package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking_booking/internal/domain"
)

type staticStatus struct {
	status []string
	err    error
}

func (s staticStatus) FetchStatus(context.Context) ([]string, error) { return s.status, s.err }

func TestVoice_FindAvailableSlot(t *testing.T) {
	v := NewVoiceService(staticStatus{status: []string{"Occupied", "Empty", "Empty"}})
	res, err := v.Interpret(context.Background(), "Find Available Slot")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentStatusQuery, res.Intent)
	assert.Equal(t, "find available slot", res.Command)
	assert.Equal(t, "Slot 2 is available.", res.Speech)
	require.NotNil(t, res.SlotNumber)
	assert.Equal(t, 2, *res.SlotNumber)
}

func TestVoice_OnlyExactEmptyCounts(t *testing.T) {
	v := NewVoiceService(staticStatus{status: []string{"empty", "Full", "Empty"}})
	res, err := v.Interpret(context.Background(), "any available slot?")
	require.NoError(t, err)
	assert.Equal(t, "Slot 3 is available.", res.Speech)
}

func TestVoice_NoSlotsAvailable(t *testing.T) {
	v := NewVoiceService(staticStatus{status: []string{"Occupied", "Occupied"}})
	res, err := v.Interpret(context.Background(), "available slot")
	require.NoError(t, err)
	assert.Equal(t, "No slots available.", res.Speech)
	assert.Nil(t, res.SlotNumber)
}

func TestVoice_StatusFailureIsError(t *testing.T) {
	v := NewVoiceService(staticStatus{err: ErrStatusUnavailable})
	_, err := v.Interpret(context.Background(), "find available slot")
	assert.True(t, errors.Is(err, ErrStatusUnavailable))
}

func TestVoice_BookSlot(t *testing.T) {
	v := NewVoiceService(staticStatus{})
	cases := map[string]string{
		"Book slot 7":          "Booking slot 7.",
		"book slot 1 and 2":    "Booking slot 12.",
		"please book slot two": "Please mention a valid slot number.",
		"book slot 007":        "Booking slot 7.",
	}
	for utterance, want := range cases {
		res, err := v.Interpret(context.Background(), utterance)
		require.NoError(t, err, utterance)
		assert.Equal(t, domain.IntentBookSlot, res.Intent, utterance)
		assert.Equal(t, want, res.Speech, utterance)
	}
}

func TestVoice_UnrecognizedCommand(t *testing.T) {
	v := NewVoiceService(staticStatus{})
	res, err := v.Interpret(context.Background(), "open the gate")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentUnknown, res.Intent)
	assert.Equal(t, `Command not recognized. Try saying, "Find available slot" or "Book slot 2".`, res.Speech)
}

func TestVoice_UsesStatusBoard(t *testing.T) {
	board := NewStatusBoard(3, nil)
	_, err := board.SetSlot(1, true)
	require.NoError(t, err)

	res, err := NewVoiceService(board).Interpret(context.Background(), "find available slot")
	require.NoError(t, err)
	assert.Equal(t, "Slot 2 is available.", res.Speech)
}

func TestHTTPStatusSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Occupied","Empty"]`))
	}))
	defer srv.Close()

	status, err := NewHTTPStatusSource(srv.URL + "/status").FetchStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Occupied", "Empty"}, status)
}

func TestHTTPStatusSource_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPStatusSource(srv.URL).FetchStatus(context.Background())
	assert.True(t, errors.Is(err, ErrStatusUnavailable))

	_, err = NewHTTPStatusSource("http://127.0.0.1:1/status").FetchStatus(context.Background())
	assert.True(t, errors.Is(err, ErrStatusUnavailable))
}
