package ticketservice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture from spec §9.5: code = 0xCAEE4FB1, checksum nibbles XOR = 0x6E,
// rendered as "CAEE4FB1-6E". The holdID that produces this code is
// 0x0010F50F (code XOR 0xCAFEBABE); the spec's prose states a different
// holdID (0x04101B0F) but that value does not XOR back to the documented
// code, so this test is grounded on the self-consistent code/checksum pair.
func TestEncodeConfirmation_Fixture(t *testing.T) {
	code := EncodeConfirmation(0x0010F50F)
	require.Equal(t, "CAEE4FB1-6E", code)
}

func TestDecodeConfirmation_RoundTrips(t *testing.T) {
	ids := []int32{0x04101B0F, 0, -1, 1, 1 << 30}
	for _, id := range ids {
		code := EncodeConfirmation(id)
		decoded, err := DecodeConfirmation(code)
		require.NoError(t, err)
		require.Equal(t, id, decoded)
	}
}

func TestDecodeConfirmation_RejectsBadChecksum(t *testing.T) {
	_, err := DecodeConfirmation("CAEE4FB1-00")
	require.Error(t, err)
}

func TestDecodeConfirmation_RejectsMalformed(t *testing.T) {
	_, err := DecodeConfirmation("not-a-code-at-all")
	require.Error(t, err)
}

func TestDeriveIdentifier_DeterministicForSameInputs(t *testing.T) {
	id1 := deriveIdentifier("a@example.com", 42, 1000)
	id2 := deriveIdentifier("a@example.com", 42, 1000)
	require.Equal(t, id1, id2)
}

func TestDeriveIdentifier_DiffersAcrossMillis(t *testing.T) {
	id1 := deriveIdentifier("a@example.com", 42, 1000)
	id2 := deriveIdentifier("a@example.com", 42, 1001)
	require.NotEqual(t, id1, id2)
}
