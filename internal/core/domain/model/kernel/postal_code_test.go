package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostalCode(t *testing.T) {
	t.Run("should create postal code from five digits", func(t *testing.T) {
		code, err := kernel.NewPostalCode("49503")

		require.NoError(t, err)
		assert.Equal(t, "49503", code.String())
		assert.Equal(t, "49503", code.Zip5())
		assert.True(t, code.IsUsable())
		assert.NoError(t, code.Validate())
	})

	t.Run("should create postal code from ZIP+4", func(t *testing.T) {
		code, err := kernel.NewPostalCode("49503-1234")

		require.NoError(t, err)
		assert.Equal(t, "49503-1234", code.String())
		assert.Equal(t, "49503", code.Zip5())
		assert.True(t, code.IsUsable())
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.NewPostalCode("")

		require.Error(t, err)
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"4950", "495031", "abcde", "49503-12", "49503 1234"} {
			_, err := kernel.NewPostalCode(input)
			require.Error(t, err, "input %q should be rejected", input)
		}
	})
}

func TestSentinelPostalCode(t *testing.T) {
	t.Run("sentinel is constructed but unusable", func(t *testing.T) {
		code := kernel.SentinelPostalCode()

		assert.Equal(t, "00000", code.String())
		assert.True(t, code.IsSentinel())
		assert.False(t, code.IsUsable())
		assert.NoError(t, code.Validate())
	})

	t.Run("sentinel value constant matches", func(t *testing.T) {
		assert.Equal(t, kernel.SentinelPostalCodeValue, kernel.SentinelPostalCode().String())
	})
}

func TestPostalCode_IsEqual(t *testing.T) {
	a, err := kernel.NewPostalCode("49503")
	require.NoError(t, err)
	b, err := kernel.NewPostalCode("49503")
	require.NoError(t, err)
	c, err := kernel.NewPostalCode("10001")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestPostalCode_ZeroValue(t *testing.T) {
	var code kernel.PostalCode

	require.Error(t, code.Validate())
	assert.False(t, code.IsUsable())
	assert.Empty(t, code.String())
}
