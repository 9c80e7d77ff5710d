// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"strconv"
	"testing"
	"time"
)

var tcs = []struct {
	year   int
	month  time.Month
	day    int
	julian int
}{
	{2000, 1, 1, 2451545},
	{2019, 1, 1, 2458485},
	{2019, 12, 31, 2458849},
	{2020, 2, 29, 2458909},
	{-4713, 11, 24, 0},
	{1, 1, 1, 1721426},
	{0, 1, 1, 1721060},
	{-1, 12, 31, 1721059},
	{1970, 1, 1, 2440588},
	{9999, 12, 31, 5373484},
	{-9999, 1, 1, -1930999},
}

func TestNewDate(t *testing.T) {
	for i, tc := range tcs {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			d, err := NewDate(tc.year, tc.month, tc.day)
			if err != nil {
				t.Fatalf("NewDate(%d, %d, %d) = _, %v, want <nil>", tc.year, tc.month, tc.day, err)
			}
			if got := d.JulianDay(); got != tc.julian {
				t.Errorf("NewDate(%d, %d, %d).JulianDay() = %d, want %d", tc.year, tc.month, tc.day, got, tc.julian)
			}
			check(t, tc.year, int(tc.month), tc.day)
		})
	}
}

func TestNewDateErrors(t *testing.T) {
	invalid := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2019, 2, 29},
		{2019, 1, 0},
		{2019, 1, 32},
		{2019, 0, 1},
		{2019, 13, 1},
		{10000, 1, 1},
		{-10000, 1, 1},
		{2019, 4, 31},
	}
	for _, tc := range invalid {
		if _, err := NewDate(tc.year, tc.month, tc.day); err == nil {
			t.Errorf("NewDate(%d, %d, %d) = _, <nil>, want error", tc.year, tc.month, tc.day)
		}
	}
}

func TestDateFromOrdinal(t *testing.T) {
	if d, err := DateFromOrdinal(2020, 366); err != nil || d != MustDate(2020, 12, 31) {
		t.Errorf("DateFromOrdinal(2020, 366) = %v, %v, want %v, <nil>", d, err, MustDate(2020, 12, 31))
	}
	if _, err := DateFromOrdinal(2019, 366); err == nil {
		t.Errorf("DateFromOrdinal(2019, 366) = _, <nil>, want error")
	}
	if d, err := DateFromOrdinal(2019, 60); err != nil || d != MustDate(2019, 3, 1) {
		t.Errorf("DateFromOrdinal(2019, 60) = %v, %v, want %v, <nil>", d, err, MustDate(2019, 3, 1))
	}
}

func TestDateFromJulianDay(t *testing.T) {
	for i, tc := range tcs {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got, err := DateFromJulianDay(tc.julian)
			if err != nil {
				t.Fatalf("DateFromJulianDay(%d) = _, %v, want <nil>", tc.julian, err)
			}
			if want := MustDate(tc.year, tc.month, tc.day); got != want {
				t.Errorf("DateFromJulianDay(%d) = %v, want %v", tc.julian, got, want)
			}
		})
	}
	if _, err := DateFromJulianDay(DateMax.JulianDay() + 1); err == nil {
		t.Errorf("DateFromJulianDay(%d) = _, <nil>, want error", DateMax.JulianDay()+1)
	}
	if _, err := DateFromJulianDay(DateMin.JulianDay() - 1); err == nil {
		t.Errorf("DateFromJulianDay(%d) = _, <nil>, want error", DateMin.JulianDay()-1)
	}
}

func TestWeekday(t *testing.T) {
	// The first of each month in 2019.
	want := []time.Weekday{
		time.Tuesday, time.Friday, time.Friday, time.Monday,
		time.Wednesday, time.Saturday, time.Monday, time.Thursday,
		time.Sunday, time.Tuesday, time.Friday, time.Sunday,
	}
	for m := time.January; m <= time.December; m++ {
		if got := MustDate(2019, m, 1).Weekday(); got != want[m-1] {
			t.Errorf("MustDate(2019, %s, 1).Weekday() = %v, want %v", m, got, want[m-1])
		}
	}
}

func TestISOWeek(t *testing.T) {
	tcs := []struct {
		date    Date
		year    int
		week    int
		weekday time.Weekday
	}{
		{MustDate(2019, 1, 1), 2019, 1, time.Tuesday},
		{MustDate(2019, 12, 30), 2020, 1, time.Monday},
		{MustDate(2020, 12, 31), 2020, 53, time.Thursday},
		{MustDate(2021, 1, 1), 2020, 53, time.Friday},
		{MustDate(2018, 12, 31), 2019, 1, time.Monday},
		{MustDate(2016, 1, 1), 2015, 53, time.Friday},
	}
	for _, tc := range tcs {
		year, week, weekday := tc.date.ISOWeekDate()
		if year != tc.year || week != tc.week || weekday != tc.weekday {
			t.Errorf("%v.ISOWeekDate() = (%d, %d, %v), want (%d, %d, %v)", tc.date, year, week, weekday, tc.year, tc.week, tc.weekday)
		}
		got, err := DateFromISOWeek(tc.year, tc.week, tc.weekday)
		if err != nil {
			t.Fatalf("DateFromISOWeek(%d, %d, %v) = _, %v, want <nil>", tc.year, tc.week, tc.weekday, err)
		}
		if got != tc.date {
			t.Errorf("DateFromISOWeek(%d, %d, %v) = %v, want %v", tc.year, tc.week, tc.weekday, got, tc.date)
		}
	}
	if _, err := DateFromISOWeek(2019, 53, time.Monday); err == nil {
		t.Errorf("DateFromISOWeek(2019, 53, Monday) = _, <nil>, want error")
	}
}

func TestNextPreviousDay(t *testing.T) {
	if d, ok := MustDate(2019, 12, 31).NextDay(); !ok || d != MustDate(2020, 1, 1) {
		t.Errorf("MustDate(2019, 12, 31).NextDay() = %v, %v", d, ok)
	}
	if d, ok := MustDate(2020, 1, 1).PreviousDay(); !ok || d != MustDate(2019, 12, 31) {
		t.Errorf("MustDate(2020, 1, 1).PreviousDay() = %v, %v", d, ok)
	}
	if _, ok := DateMax.NextDay(); ok {
		t.Errorf("DateMax.NextDay() ok, want !ok")
	}
	if _, ok := DateMin.PreviousDay(); ok {
		t.Errorf("DateMin.PreviousDay() ok, want !ok")
	}
}

func TestDateCheckedAdd(t *testing.T) {
	d := MustDate(2019, 1, 1)
	if got, ok := d.CheckedAdd(Days(45)); !ok || got != MustDate(2019, 2, 15) {
		t.Errorf("CheckedAdd(Days(45)) = %v, %v", got, ok)
	}
	// Sub-day parts are ignored.
	if got, ok := d.CheckedAdd(Hours(23)); !ok || got != d {
		t.Errorf("CheckedAdd(Hours(23)) = %v, %v, want %v", got, ok, d)
	}
	if got, ok := d.CheckedAdd(Hours(47)); !ok || got != MustDate(2019, 1, 2) {
		t.Errorf("CheckedAdd(Hours(47)) = %v, %v, want %v", got, ok, MustDate(2019, 1, 2))
	}
	if _, ok := DateMax.CheckedAdd(Days(1)); ok {
		t.Errorf("DateMax.CheckedAdd(Days(1)) ok, want !ok")
	}
	if _, ok := DateMin.CheckedSub(Days(1)); ok {
		t.Errorf("DateMin.CheckedSub(Days(1)) ok, want !ok")
	}
	if got := DateMax.SaturatingAdd(Days(2)); got != DateMax {
		t.Errorf("DateMax.SaturatingAdd(Days(2)) = %v, want DateMax", got)
	}
	if got := DateMin.SaturatingSub(Days(2)); got != DateMin {
		t.Errorf("DateMin.SaturatingSub(Days(2)) = %v, want DateMin", got)
	}
	if got := d.SaturatingAdd(Days(-2)); got != MustDate(2018, 12, 30) {
		t.Errorf("SaturatingAdd(Days(-2)) = %v", got)
	}
}

func TestSubDate(t *testing.T) {
	a, b := MustDate(2019, 1, 2), MustDate(2018, 12, 31)
	if got := a.SubDate(b); got != Days(2) {
		t.Errorf("%v.SubDate(%v) = %v, want %v", a, b, got, Days(2))
	}
	if got := b.SubDate(a); got != Days(-2) {
		t.Errorf("%v.SubDate(%v) = %v, want %v", b, a, got, Days(-2))
	}
}

func TestAddDate(t *testing.T) {
	tcs := []struct {
		d                   Date
		years, months, days int
		want                Date
	}{
		{MustDate(2011, 1, 1), -1, 2, 3, MustDate(2010, 3, 4)},
		{MustDate(2019, 10, 31), 0, 1, 0, MustDate(2019, 12, 1)},
		{MustDate(2020, 2, 29), 1, 0, 0, MustDate(2021, 3, 1)},
		{MustDate(2019, 1, 1), 0, 0, 365, MustDate(2020, 1, 1)},
		{MustDate(2019, 1, 1), 0, -13, 0, MustDate(2017, 12, 1)},
	}
	for _, tc := range tcs {
		if got := tc.d.AddDate(tc.years, tc.months, tc.days); got != tc.want {
			t.Errorf("%v.AddDate(%d, %d, %d) = %v, want %v", tc.d, tc.years, tc.months, tc.days, got, tc.want)
		}
	}
}

func TestReplaceYear(t *testing.T) {
	tcs := []struct {
		d    Date
		year int
		want Date
		ok   bool
	}{
		{MustDate(2020, 2, 28), 2019, MustDate(2019, 2, 28), true},
		{MustDate(2020, 2, 29), 2024, MustDate(2024, 2, 29), true},
		{MustDate(2020, 2, 29), 2019, Date{}, false},
		{MustDate(2020, 3, 1), 2019, MustDate(2019, 3, 1), true},
		{MustDate(2019, 3, 1), 2020, MustDate(2020, 3, 1), true},
		{MustDate(2019, 12, 31), 2020, MustDate(2020, 12, 31), true},
		{MustDate(2019, 1, 1), 10000, Date{}, false},
	}
	for _, tc := range tcs {
		got, err := tc.d.ReplaceYear(tc.year)
		if tc.ok != (err == nil) {
			t.Errorf("%v.ReplaceYear(%d) = _, %v, want ok=%v", tc.d, tc.year, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("%v.ReplaceYear(%d) = %v, want %v", tc.d, tc.year, got, tc.want)
		}
	}
}

func TestReplaceMonthDay(t *testing.T) {
	d := MustDate(2019, 1, 31)
	if got, err := d.ReplaceMonth(time.May); err != nil || got != MustDate(2019, 5, 31) {
		t.Errorf("ReplaceMonth(May) = %v, %v", got, err)
	}
	if _, err := d.ReplaceMonth(time.April); err == nil {
		t.Errorf("ReplaceMonth(April) = _, <nil>, want error")
	}
	if got, err := d.ReplaceDay(15); err != nil || got != MustDate(2019, 1, 15) {
		t.Errorf("ReplaceDay(15) = %v, %v", got, err)
	}
	if _, err := d.ReplaceDay(32); err == nil {
		t.Errorf("ReplaceDay(32) = _, <nil>, want error")
	}
}

func TestToday(t *testing.T) {
	y, m, d := time.Now().UTC().Date()
	if got, want := Today(time.UTC), MustDate(y, m, d); got != want {
		t.Errorf("Today(time.UTC) = %v, want %v", got, want)
	}
}

func addAll(f *testing.F) {
	for _, tc := range tcs {
		f.Add(tc.year, int(tc.month), tc.day)
	}
}

func FuzzNewDate(f *testing.F) {
	addAll(f)
	f.Fuzz(check)
}

func FuzzJulianDay(f *testing.F) {
	for _, tc := range tcs {
		f.Add(tc.julian)
	}
	f.Fuzz(func(t *testing.T, jd int) {
		d, err := DateFromJulianDay(jd)
		if err != nil {
			t.Skip()
		}
		if got := d.JulianDay(); got != jd {
			t.Errorf("DateFromJulianDay(%d).JulianDay() = %d", jd, got)
		}
	})
}

func FuzzMarshalText(f *testing.F) {
	addAll(f)
	f.Fuzz(func(t *testing.T, year, month, day int) {
		want, err := NewDate(year, time.Month(month), day)
		if err != nil || year < 0 {
			t.Skip()
		}
		b, _ := want.MarshalText()
		t.Logf("NewDate(%d, %d, %d).MarshalText() = %q", year, month, day, string(b))
		var got Date
		if err := got.UnmarshalText(b); err != nil {
			t.Errorf("UnmarshalText(%q) = %v, want <nil>", string(b), err)
		}
		if got != want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", string(b), got, want)
		}
	})
}

func FuzzMarshalBinary(f *testing.F) {
	addAll(f)
	f.Fuzz(func(t *testing.T, year, month, day int) {
		want, err := NewDate(year, time.Month(month), day)
		if err != nil {
			t.Skip()
		}
		b, _ := want.MarshalBinary()
		var got Date
		if err := got.UnmarshalBinary(b); err != nil {
			t.Errorf("UnmarshalBinary(%q) = %v, want <nil>", string(b), err)
		}
		if got != want {
			t.Errorf("UnmarshalBinary(%q) = %v, want %v", string(b), got, want)
		}
	})
}

func FuzzUnmarshalBinary(f *testing.F) {
	for _, tc := range tcs {
		b, err := MustDate(tc.year, tc.month, tc.day).MarshalBinary()
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		var d Date
		// we only check that UnmarshalBinary does not panic.
		d.UnmarshalBinary(b)
	})
}

// check that the given year, month and day values produce the same date
// calculations as time.Time.
func check(t *testing.T, year, month, day int) {
	d, err := NewDate(year, time.Month(month), day)
	if err != nil {
		t.Skip()
	}
	want := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	Y, M, D := d.Date()
	if wantY, wantM, wantD := want.Date(); Y != wantY || M != wantM || D != wantD {
		t.Errorf("NewDate(%d, %d, %d).Date() = %d, %d, %d, want %d, %d, %d", year, month, day, Y, M, D, wantY, wantM, wantD)
	}
	if d2 := MustDate(Y, M, D); d2 != d {
		t.Errorf("MustDate(%d, %d, %d) = %v, want %v", Y, M, D, d2, d)
	}
	if gotYD, wantYD := d.Ordinal(), want.YearDay(); gotYD != wantYD {
		t.Errorf("NewDate(%d, %d, %d).Ordinal() = %d, want %d", year, month, day, gotYD, wantYD)
	}
	if gotWD, wantWD := d.Weekday(), want.Weekday(); gotWD != wantWD {
		t.Errorf("NewDate(%d, %d, %d).Weekday() = %v, want %v", year, month, day, gotWD, wantWD)
	}
	gotIY, gotIW := d.ISOWeek()
	wantIY, wantIW := want.ISOWeek()
	if gotIY != wantIY || gotIW != wantIW {
		t.Errorf("NewDate(%d, %d, %d).ISOWeek() = (%d, %d), want (%d, %d)", year, month, day, gotIY, gotIW, wantIY, wantIW)
	}
	// Cross-check the Julian day number via the Unix epoch.
	const unixEpochJulian = 2440588
	wantJD := unixEpochJulian + int(floorDiv(want.Unix(), secondsPerDay))
	if gotJD := d.JulianDay(); gotJD != wantJD {
		t.Errorf("NewDate(%d, %d, %d).JulianDay() = %d, want %d", year, month, day, gotJD, wantJD)
	}
	if d2, err := DateFromJulianDay(d.JulianDay()); err != nil || d2 != d {
		t.Errorf("DateFromJulianDay(%d) = %v, %v, want %v", d.JulianDay(), d2, err, d)
	}
}
