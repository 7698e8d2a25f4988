package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept supported representations", func(t *testing.T) {
		for _, input := range []string{
			validUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, validUUID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.True(t, original.IsEqual(restored))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestOptionalUUID(t *testing.T) {
	t.Run("nil round trips to nil", func(t *testing.T) {
		id, err := kernel.OptionalUUIDFromBytes(nil)
		require.NoError(t, err)
		assert.Nil(t, id)
		assert.Nil(t, kernel.OptionalBytes(nil))
	})

	t.Run("value round trips", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := kernel.OptionalBytes(&original)
		require.NotNil(t, raw)

		restored, err := kernel.OptionalUUIDFromBytes(raw)
		require.NoError(t, err)
		require.NotNil(t, restored)
		assert.True(t, original.IsEqual(*restored))
	})
}
