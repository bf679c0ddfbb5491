package roster

import (
	"testing"

	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passenger(id, seat string) models.Passenger {
	return models.Passenger{Name: "P" + id, Passport: "EP" + id, ID: id, Contact: "0911", Seat: seat, Destination: "Cairo"}
}

func ids(ps []models.Passenger) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(passenger("3", "A1")))
	require.NoError(t, r.Add(passenger("1", "A2")))
	require.NoError(t, r.Add(passenger("2", "A3")))

	assert.Equal(t, []string{"3", "1", "2"}, ids(r.Passengers()))
	assert.Equal(t, 3, r.Len())
}

func TestAdd_RejectsDuplicateIdentity(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(passenger("7", "A1")))

	err := r.Add(passenger("7", "B1"))
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	assert.Equal(t, 1, r.Len())
}

func TestRemoveByIdentity(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(passenger("1", "A1")))
	require.NoError(t, r.Add(passenger("2", "A2")))
	require.NoError(t, r.Add(passenger("3", "A3")))

	p, ok := r.RemoveByIdentity("2")
	require.True(t, ok)
	assert.Equal(t, "A2", p.Seat)
	assert.Equal(t, []string{"1", "3"}, ids(r.Passengers()))

	_, ok = r.RemoveByIdentity("2")
	assert.False(t, ok)
	assert.False(t, r.Contains("2"))
}

func TestReplace_InPlace(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(passenger("1", "A1")))
	require.NoError(t, r.Add(passenger("2", "A2")))
	require.NoError(t, r.Add(passenger("3", "A3")))

	require.NoError(t, r.Replace("2", passenger("9", "J10")))

	assert.Equal(t, []string{"1", "9", "3"}, ids(r.Passengers()))
	p, ok := r.Get("9")
	require.True(t, ok)
	assert.Equal(t, "J10", p.Seat)
	assert.False(t, r.Contains("2"))

	err := r.Replace("9", passenger("1", "B1"))
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)

	assert.Error(t, r.Replace("404", passenger("404", "B1")))
}

func TestClear(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(passenger("1", "A1")))
	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Passengers())
	require.NoError(t, r.Add(passenger("1", "A1")))
}
