package synth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDOB(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	dob := time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)

	text, err := FormatDOB(r, dob, Table[string]{"2006-01-02": 1})
	require.NoError(t, err)
	assert.Equal(t, "1985-06-15", text)
}

func TestParseDOB(t *testing.T) {
	tests := []struct {
		text  string
		year  int
		month int
		day   int
		ok    bool
	}{
		{"1985-06-15", 1985, 6, 15, true},
		{"1985/06/15", 1985, 6, 15, true},
		{"25/12/1990", 1990, 12, 25, true},
		// Month-first is unambiguous when the second number exceeds 12.
		{"12/25/1990", 1990, 12, 25, true},
		// Both numbers fit a month; day-first wins.
		{"03/04/1990", 1990, 4, 3, true},
		{"30/02/1999", 0, 0, 0, false},
		{"1985-13-01", 0, 0, 0, false},
		{"junk", 0, 0, 0, false},
		{"15.06.1985", 0, 0, 0, false},
		{"1985-06", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			year, month, day, ok := parseDOB(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.year, year)
				assert.Equal(t, tt.month, month)
				assert.Equal(t, tt.day, day)
			}
		})
	}
}

func TestReformatDOBRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 100; i++ {
		text, ok := ReformatDOB(r, "1985-06-15", DOBFormats)
		require.True(t, ok)

		year, month, day, parsed := parseDOB(text)
		require.True(t, parsed, "reformatted value %q must stay readable", text)
		assert.Equal(t, 1985, year)
		assert.Equal(t, 6, month)
		assert.Equal(t, 15, day)
	}
}

func TestReformatDOBUnparseable(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	text, ok := ReformatDOB(r, "not a date", DOBFormats)
	assert.False(t, ok)
	assert.Equal(t, "not a date", text)
}

func TestYearFromDOB(t *testing.T) {
	assert.Equal(t, "1985", yearFromDOB("1985-06-15"))
	assert.Equal(t, "1985", yearFromDOB("15/06/1985"))
	assert.Equal(t, "1985", yearFromDOB("06-15-1985"))
	assert.Equal(t, "", yearFromDOB("junk"))
	assert.Equal(t, "", yearFromDOB("15/06/85"))
}
