package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLapTime(t *testing.T) {
	testCases := []struct {
		input    string
		expected *time.Duration
	}{
		{
			input:    "1:23.4567",
			expected: ptr(83*time.Second + 456700*time.Microsecond),
		},
		{
			input:    "40.4432",
			expected: ptr(40*time.Second + 443200*time.Microsecond),
		},
		{
			input:    "2:10:05.1234",
			expected: ptr(2*time.Hour + 10*time.Minute + 5*time.Second + 123400*time.Microsecond),
		},
		{input: "", expected: nil},
		{input: "-", expected: nil},
		{input: "DNS", expected: nil},
		{input: "1:xx.4", expected: nil},
		{input: "1:2:3:4", expected: nil},
	}

	for _, test := range testCases {
		got := ParseLapTime(test.input)
		if test.expected == nil {
			require.Nil(t, got, "input %q", test.input)
			continue
		}
		require.NotNil(t, got, "input %q", test.input)
		require.Equal(t, *test.expected, *got, "input %q", test.input)
	}
}

func TestFormatLapTimeRoundTrip(t *testing.T) {
	for _, input := range []string{"1:23.4567", "40.4432", "2:10:05.1234", "59.9", "1:00.0001"} {
		d := ParseLapTime(input)
		require.NotNil(t, d, "input %q", input)

		again := ParseLapTime(FormatLapTime(*d))
		require.NotNil(t, again, "input %q", input)
		require.Equal(t, *d, *again, "input %q", input)
	}
}

func TestCoerceInt(t *testing.T) {
	require.Nil(t, coerceInt(nil))
	require.Nil(t, coerceInt(""))
	require.Nil(t, coerceInt("-"))
	require.Nil(t, coerceInt("DNF"))
	require.Equal(t, 3, *coerceInt("3"))
	require.Equal(t, 3, *coerceInt(" 3 "))
	require.Equal(t, 3, *coerceInt("3.0"))
	require.Equal(t, 3, *coerceInt(float64(3)))
}

func ptr[T any](v T) *T {
	return &v
}
