// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTime(t *testing.T) {
	got, err := NewTimeNano(13, 37, 42, 123_456_789)
	require.NoError(t, err)
	hour, minute, second, nanosecond := got.HMSNano()
	assert.Equal(t, 13, hour)
	assert.Equal(t, 37, minute)
	assert.Equal(t, 42, second)
	assert.Equal(t, 123_456_789, nanosecond)
	assert.Equal(t, 123, got.Millisecond())
	assert.Equal(t, 123_456, got.Microsecond())

	ms, err := NewTimeMilli(1, 2, 3, 500)
	require.NoError(t, err)
	assert.Equal(t, 500_000_000, ms.Nanosecond())

	us, err := NewTimeMicro(1, 2, 3, 500_001)
	require.NoError(t, err)
	assert.Equal(t, 500_001_000, us.Nanosecond())

	for _, tc := range [][4]int{
		{24, 0, 0, 0},
		{-1, 0, 0, 0},
		{0, 60, 0, 0},
		{0, 0, 60, 0},
		{0, 0, 0, 1_000_000_000},
	} {
		_, err := NewTimeNano(tc[0], tc[1], tc[2], tc[3])
		assert.Error(t, err, "NewTimeNano(%v)", tc)
	}
}

func TestTimeAddWraps(t *testing.T) {
	tcs := []struct {
		t    Time
		d    Duration
		want Time
		adj  dayAdjustment
	}{
		{MustTime(12, 0, 0), Hours(2), MustTime(14, 0, 0), dayUnchanged},
		{MustTime(23, 30, 0), Hours(1), MustTime(0, 30, 0), dayNext},
		{MustTime(0, 30, 0), Hours(-1), MustTime(23, 30, 0), dayPrevious},
		// Only the sub-day part wraps the clock; the whole day of a 27h
		// span is the date's business.
		{MustTime(12, 0, 0), Hours(27), MustTime(15, 0, 0), dayUnchanged},
		{TimeMax, NewDuration(0, 1), Midnight, dayNext},
		{MustTime(0, 0, 0), NewDuration(0, -1), TimeMax, dayPrevious},
		{MustTime(12, 0, 0), Days(3), MustTime(12, 0, 0), dayUnchanged},
	}
	for _, tc := range tcs {
		adj, got := tc.t.adjustingAdd(tc.d)
		assert.Equal(t, tc.want, got, "%v.Add(%v)", tc.t, tc.d)
		assert.Equal(t, tc.adj, adj, "%v.Add(%v) adjustment", tc.t, tc.d)

		// Subtracting the negated duration must agree.
		adj, got = tc.t.adjustingSub(tc.d.Neg())
		assert.Equal(t, tc.want, got, "%v.Sub(%v)", tc.t, tc.d.Neg())
		assert.Equal(t, tc.adj, adj, "%v.Sub(%v) adjustment", tc.t, tc.d.Neg())
	}
}

func TestTimeAddDuration(t *testing.T) {
	assert.Equal(t, MustTime(14, 30, 0), MustTime(12, 0, 0).AddDuration(150*time.Minute))
	assert.Equal(t, MustTime(23, 30, 0), MustTime(0, 30, 0).AddDuration(-time.Hour))
	assert.Equal(t, MustTime(0, 30, 0), MustTime(23, 30, 0).SubDuration(-time.Hour))
	assert.Equal(t, MustTime(15, 0, 0), MustTime(12, 0, 0).AddDuration(27*time.Hour))

	// The most negative time.Duration cannot be negated.
	min := time.Duration(math.MinInt64)
	assert.Equal(t, Time{0, 12, 43, 145224192}, Midnight.AddDuration(min))
	assert.Equal(t, Time{23, 47, 16, 854775808}, Midnight.SubDuration(min))
}

func TestSubTime(t *testing.T) {
	assert.Equal(t, Hours(2), MustTime(14, 0, 0).SubTime(MustTime(12, 0, 0)))
	assert.Equal(t, Hours(-2), MustTime(12, 0, 0).SubTime(MustTime(14, 0, 0)))
	assert.Equal(t, NewDuration(0, 500_000_000), Time{0, 0, 1, 0}.SubTime(Time{0, 0, 0, 500_000_000}))
	assert.Equal(t, NewDuration(86399, 999_999_999), TimeMax.SubTime(Midnight))
}

func TestTimeReplace(t *testing.T) {
	base := MustTime(13, 37, 42)
	got, err := base.ReplaceHour(7)
	require.NoError(t, err)
	assert.Equal(t, MustTime(7, 37, 42), got)
	got, err = base.ReplaceMinute(0)
	require.NoError(t, err)
	assert.Equal(t, MustTime(13, 0, 42), got)
	got, err = base.ReplaceSecond(59)
	require.NoError(t, err)
	assert.Equal(t, MustTime(13, 37, 59), got)
	got, err = base.ReplaceNanosecond(500_000_000)
	require.NoError(t, err)
	assert.Equal(t, 500_000_000, got.Nanosecond())
	got, err = base.ReplaceMillisecond(25)
	require.NoError(t, err)
	assert.Equal(t, 25_000_000, got.Nanosecond())

	_, err = base.ReplaceHour(24)
	assert.Error(t, err)
	_, err = base.ReplaceMinute(-1)
	assert.Error(t, err)
	_, err = base.ReplaceNanosecond(1_000_000_000)
	assert.Error(t, err)
}

func TestTimeCompare(t *testing.T) {
	a, b := MustTime(13, 37, 0), MustTime(13, 37, 1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, Time{13, 37, 0, 1}.Compare(Time{13, 37, 0, 2}))
}

func TestTimeString(t *testing.T) {
	assert.Equal(t, "13:37:42", MustTime(13, 37, 42).String())
	assert.Equal(t, "00:00:00", Midnight.String())
	assert.Equal(t, "13:37:42.5", Time{13, 37, 42, 500_000_000}.String())
	assert.Equal(t, "23:59:59.999999999", TimeMax.String())
}

func TestTimeMarshalText(t *testing.T) {
	for _, want := range []Time{Midnight, MustTime(13, 37, 42), TimeMax, {0, 0, 0, 1}} {
		b, err := want.MarshalText()
		require.NoError(t, err)
		var got Time
		require.NoError(t, got.UnmarshalText(b), "UnmarshalText(%q)", b)
		assert.Equal(t, want, got)
	}
	var got Time
	assert.Error(t, got.UnmarshalText([]byte("25:00:00")))
	assert.Error(t, got.UnmarshalText([]byte("13:37")))
}

func TestTimeMarshalBinary(t *testing.T) {
	for _, want := range []Time{Midnight, MustTime(13, 37, 42), TimeMax} {
		b, err := want.MarshalBinary()
		require.NoError(t, err)
		var got Time
		require.NoError(t, got.UnmarshalBinary(b))
		assert.Equal(t, want, got)
	}
	var got Time
	assert.Error(t, got.UnmarshalBinary(nil))
	assert.Error(t, got.UnmarshalBinary([]byte{0xff}))
}
