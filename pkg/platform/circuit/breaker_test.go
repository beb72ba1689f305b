package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		b := New("registrar")
		assert.Equal(t, "registrar", b.Name())
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "closed", b.State().String())
	})

	t.Run("opens on the threshold failure only", func(t *testing.T) {
		b := New("registrar", WithFailureThreshold(2))

		open, change := b.RecordFailure()
		assert.False(t, open)
		assert.False(t, change.Opened)

		open, change = b.RecordFailure()
		assert.True(t, open)
		assert.True(t, change.Opened)

		open, change = b.RecordFailure()
		assert.True(t, open)
		assert.False(t, change.Opened, "already open")
	})

	t.Run("success while closed clears the failure streak", func(t *testing.T) {
		b := New("registrar", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()
		assert.False(t, b.IsOpen())
	})

	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("registrar", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		closed, change := b.RecordSuccess()
		assert.False(t, closed)
		assert.False(t, change.Closed)

		b.RecordFailure()
		closed, _ = b.RecordSuccess()
		assert.False(t, closed, "failure resets the success streak")

		closed, change = b.RecordSuccess()
		assert.True(t, closed)
		assert.True(t, change.Closed)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("reset", func(t *testing.T) {
		b := New("registrar", WithFailureThreshold(1))
		b.RecordFailure()
		b.Reset()
		assert.False(t, b.IsOpen())
	})

	t.Run("non-positive thresholds keep defaults", func(t *testing.T) {
		b := New("registrar", WithFailureThreshold(0))
		for range 4 {
			b.RecordFailure()
		}
		assert.False(t, b.IsOpen())
		b.RecordFailure()
		assert.True(t, b.IsOpen())
	})
}
