package ticketservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tixgo/seatengine/internal/allocator"
	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

func newTestService(t *testing.T, rows, cols int, ttl time.Duration, clock hold.Clock) *Service {
	t.Helper()

	layout, err := seatgrid.New(rows, cols)
	require.NoError(t, err)

	svc, err := New(Config{
		Layout:    layout,
		HoldTTL:   ttl,
		Allocator: allocator.NewThreePass(layout),
		Clock:     clock,
	})
	require.NoError(t, err)

	return svc
}

// Scenario 1 from spec §8: 1x7 stage, 10s expiration. The scenario's
// "reserve(4)" step is held and immediately reserved, so those seats are
// permanently committed and never compete with h1 for the same expiration
// instant under the fake clock.
func TestService_OneBySevenStageScenario(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 7, 10*time.Second, clock)

	h1, err := svc.FindAndHold(2, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "0:0-1", h1.DebugString())

	h2, err := svc.FindAndHold(4, "b@example.com")
	require.NoError(t, err)
	require.Equal(t, "0:2-5", h2.DebugString())

	_, err = svc.Reserve(h2.ID, "b@example.com")
	require.NoError(t, err)

	clock.Advance(11 * time.Second)

	h3, err := svc.FindAndHold(3, "c@example.com")
	require.NoError(t, err)
	require.Equal(t, "0:0-1,6", h3.DebugString())

	clock.Advance(11 * time.Second)

	h4, err := svc.FindAndHold(1, "d@example.com")
	require.NoError(t, err)
	require.Equal(t, "0:0", h4.DebugString())

	h5, err := svc.FindAndHold(2, "e@example.com")
	require.NoError(t, err)
	require.Equal(t, "0:1,6", h5.DebugString())
}

func TestService_NumAvailableTracksHoldsAndReservations(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 2, 5, time.Minute, clock)

	require.Equal(t, 10, svc.NumAvailable())

	h, err := svc.FindAndHold(4, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, 6, svc.NumAvailable())

	code, err := svc.Reserve(h.ID, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, code)
	require.Equal(t, 6, svc.NumAvailable())
}

func TestService_FindAndHoldOutOfCapacityReturnsNilNotError(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 3, time.Minute, clock)

	_, err := svc.FindAndHold(2, "a@example.com")
	require.NoError(t, err)

	h, err := svc.FindAndHold(2, "b@example.com")
	require.NoError(t, err)
	require.Nil(t, h)
}

func TestService_FindAndHoldBadArgument(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 3, time.Minute, clock)

	_, err := svc.FindAndHold(0, "a@example.com")
	require.ErrorIs(t, err, ErrBadArgument)

	_, err = svc.FindAndHold(4, "a@example.com")
	require.ErrorIs(t, err, ErrBadArgument)
}

func TestService_FindAndHoldNullEmail(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 3, time.Minute, clock)

	_, err := svc.FindAndHold(1, "")
	require.ErrorIs(t, err, ErrNullArgument)
}

func TestService_ReserveDoesNotDiscloseReason(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc2 := newTestService(t, 1, 3, time.Second, clock)

	// Unknown hold ID.
	code, err := svc2.Reserve(12345, "a@example.com")
	require.NoError(t, err)
	require.Empty(t, code)

	h, err := svc2.FindAndHold(1, "a@example.com")
	require.NoError(t, err)

	// Wrong email.
	code, err = svc2.Reserve(h.ID, "wrong@example.com")
	require.NoError(t, err)
	require.Empty(t, code)

	// Expired.
	clock.Advance(2 * time.Second)
	code, err = svc2.Reserve(h.ID, "a@example.com")
	require.NoError(t, err)
	require.Empty(t, code)

	// Null email.
	_, err = svc2.Reserve(h.ID, "")
	require.ErrorIs(t, err, ErrNullArgument)
}

func TestService_ReserveRoundTripsConfirmationCode(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 3, time.Minute, clock)

	h, err := svc.FindAndHold(1, "a@example.com")
	require.NoError(t, err)

	code, err := svc.Reserve(h.ID, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	decoded, err := DecodeConfirmation(code)
	require.NoError(t, err)
	require.Equal(t, h.ID, decoded)

	// Reserved seats never return to availability on expiration.
	clock.Advance(time.Hour)
	require.Equal(t, 2, svc.NumAvailable())
}

func TestService_IdentifiersAreUniqueAcrossCollisionProneCalls(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 10, 10, time.Minute, clock)

	seen := make(map[int32]bool)
	for i := 0; i < 50; i++ {
		h, err := svc.FindAndHold(1, "same@example.com")
		require.NoError(t, err)
		require.False(t, seen[h.ID], "duplicate identifier %d", h.ID)
		seen[h.ID] = true
	}
}

func TestService_AvailabilityInvariantHoldsAcrossLifecycle(t *testing.T) {
	clock := hold.NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 3, 4, 5*time.Second, clock)
	total := 12

	h1, err := svc.FindAndHold(3, "a@example.com")
	require.NoError(t, err)
	h2, err := svc.FindAndHold(4, "b@example.com")
	require.NoError(t, err)

	require.Equal(t, total-h1.SeatCount()-h2.SeatCount(), svc.NumAvailable())

	_, err = svc.Reserve(h1.ID, "a@example.com")
	require.NoError(t, err)

	require.Equal(t, total-h1.SeatCount()-h2.SeatCount(), svc.NumAvailable())

	clock.Advance(6 * time.Second)
	require.Equal(t, total-h1.SeatCount(), svc.NumAvailable())
}
