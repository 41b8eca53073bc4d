package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeCheckIn(t *testing.T) {
	in := domain.NormalizeCheckIn(time.Date(2025, 6, 1, 9, 30, 12, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), in)
	// Same calendar day always maps to the same instant.
	assert.Equal(t, in, domain.NormalizeCheckIn(in))
	assert.Equal(t, in, domain.NormalizeCheckIn(time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)))
}

func TestNormalizeCheckOut(t *testing.T) {
	out := domain.NormalizeCheckOut(time.Date(2025, 6, 4, 17, 45, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC), out)
	assert.Equal(t, out, domain.NormalizeCheckOut(out))
}

func TestOneNightStayHasPositiveDuration(t *testing.T) {
	in := domain.NormalizeCheckIn(day(2025, 6, 1))
	out := domain.NormalizeCheckOut(day(2025, 6, 2))

	assert.True(t, out.After(in))
	assert.Equal(t, 1, domain.Nights(in, out))
}

func TestSameDayRangeIsInverted(t *testing.T) {
	in := domain.NormalizeCheckIn(day(2025, 6, 1))
	out := domain.NormalizeCheckOut(day(2025, 6, 1))

	assert.False(t, out.After(in))
	assert.Equal(t, 0, domain.Nights(in, out))
}

func TestNights(t *testing.T) {
	cases := []struct {
		inDay, outDay int
		want          int
	}{
		{1, 2, 1},
		{1, 4, 3},
		{1, 8, 7},
	}

	for _, tc := range cases {
		in := domain.NormalizeCheckIn(day(2025, 6, tc.inDay))
		out := domain.NormalizeCheckOut(day(2025, 6, tc.outDay))
		assert.Equal(t, tc.want, domain.Nights(in, out))
	}
}

func TestOverlaps(t *testing.T) {
	inA := domain.NormalizeCheckIn(day(2025, 6, 1))
	outA := domain.NormalizeCheckOut(day(2025, 6, 4))

	cases := []struct {
		name          string
		inDay, outDay int
		want          bool
	}{
		{"contained", 2, 3, true},
		{"straddles start", 1, 2, true},
		{"straddles end", 3, 6, true},
		{"covers entirely", 1, 10, true},
		{"back-to-back after", 4, 6, false},
		{"disjoint later", 10, 12, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inB := domain.NormalizeCheckIn(day(2025, 6, tc.inDay))
			outB := domain.NormalizeCheckOut(day(2025, 6, tc.outDay))

			assert.Equal(t, tc.want, domain.Overlaps(inA, outA, inB, outB))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, domain.Overlaps(inB, outB, inA, outA))
		})
	}

	// A range ending exactly where A begins is a legal turnover too.
	inB := domain.NormalizeCheckIn(day(2025, 5, 29))
	outB := domain.NormalizeCheckOut(day(2025, 6, 1))
	assert.False(t, domain.Overlaps(inA, outA, inB, outB))
	assert.False(t, domain.Overlaps(inB, outB, inA, outA))
}
