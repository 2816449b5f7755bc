package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestAddressParser_ExtractPostalCode(t *testing.T) {
	parser := services.NewAddressParser()

	t.Run("zip_on_last_line", func(t *testing.T) {
		code := parser.ExtractPostalCode("123 Main St\nGrand Rapids, MI 49503")

		assert.Equal(t, "49503", code.String())
		assert.True(t, code.IsUsable())
	})

	t.Run("empty_input_returns_sentinel", func(t *testing.T) {
		code := parser.ExtractPostalCode("")

		assert.Equal(t, "00000", code.String())
		assert.True(t, code.IsSentinel())
		assert.False(t, code.IsUsable())
	})

	t.Run("whitespace_only_returns_sentinel", func(t *testing.T) {
		code := parser.ExtractPostalCode("   \n\t\n  ")

		assert.Equal(t, "00000", code.String())
	})

	t.Run("no_zip_anywhere_returns_sentinel", func(t *testing.T) {
		code := parser.ExtractPostalCode("John Smith\nSomewhere, MI")

		assert.Equal(t, "00000", code.String())
	})

	t.Run("scans_bottom_up_past_trailing_blank_lines", func(t *testing.T) {
		code := parser.ExtractPostalCode("123 Main St\nGrand Rapids, MI 49503\n\n   \n")

		assert.Equal(t, "49503", code.String())
	})

	t.Run("street_number_on_earlier_line_is_ignored", func(t *testing.T) {
		code := parser.ExtractPostalCode("90210 Sunset Blvd\nGrand Rapids, MI 49503")

		assert.Equal(t, "49503", code.String())
	})

	t.Run("falls_back_to_earlier_line_when_last_has_no_zip", func(t *testing.T) {
		code := parser.ExtractPostalCode("Grand Rapids, MI 49503\nUnited States")

		assert.Equal(t, "49503", code.String())
	})

	t.Run("zip_plus_four_is_matched_whole", func(t *testing.T) {
		code := parser.ExtractPostalCode("Grand Rapids, MI 49503-1234")

		assert.Equal(t, "49503-1234", code.String())
		assert.Equal(t, "49503", code.Zip5())
	})

	t.Run("first_token_on_the_line_wins", func(t *testing.T) {
		code := parser.ExtractPostalCode("Grand Rapids, MI 49503 49504")

		assert.Equal(t, "49503", code.String())
	})

	t.Run("longer_digit_runs_do_not_match", func(t *testing.T) {
		code := parser.ExtractPostalCode("Call 6165551234\nGrand Rapids, MI 49503")

		assert.Equal(t, "49503", code.String())
	})

	t.Run("windows_line_endings", func(t *testing.T) {
		code := parser.ExtractPostalCode("123 Main St\r\nGrand Rapids, MI 49503\r\n")

		assert.Equal(t, "49503", code.String())
	})
}
