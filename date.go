// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package civil provides types for calendar dates and wall-clock times
// that are not attached to a timezone.
//
// When handling civil (that is, calendar-local) date and time values, the
// standard library time package has some shortcomings:
//
//   - A time.Time is always a specific point in time in a specific
//     timezone. It is not canonically clear what the right timezone is when
//     using it to represent "March 4th, 10:30" as written on a wall
//     calendar. It's possible to just choose a fixed zone (e.g. UTC) but
//     that requires some syntactic overhead to always specify it.
//   - There is no easy way to get the difference between two calendar
//     timestamps far apart. time.Time.Sub gives you a time.Duration, which
//     can only represent ~292 years.
//   - A time.Time doesn't Marshal into nice text for date-only or
//     time-only values, as the missing parts are always serialized as well.
//
// This package provides Date, Time and DateTime types that are intended to
// be compatible with the time package, but carry no timezone. All three are
// immutable value types; every operation returns a new value. Arithmetic
// comes in three flavors: Checked* methods report overflow via a second
// return value, Saturating* methods clamp to the representable range, and
// the bare methods panic on overflow.
//
// The proleptic Gregorian calendar is used, even for dates lying before its
// introduction. Years between -9999 and 9999 inclusive are representable.
package civil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// The supported year range.
const (
	minYear = -9999
	maxYear = 9999
)

// daysBefore[m] counts the number of days in a non-leap year before month
// m+1 begins. There is an entry for m=12, counting the number of days
// before January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInYear returns 366 in leap years and 365 otherwise.
func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// daysIn returns the number of days of m in the given year.
func daysIn(m time.Month, year int) int {
	if m == time.February && isLeap(year) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

// weeksInYear returns the number of ISO weeks (52 or 53) of the given year.
func weeksInYear(year int) int {
	jan1 := (Date{year, 1}).Weekday()
	if jan1 == time.Thursday || (isLeap(year) && jan1 == time.Wednesday) {
		return 53
	}
	return 52
}

// numberFromMonday returns the ISO weekday number of wd, Monday being 1 and
// Sunday being 7.
func numberFromMonday(wd time.Weekday) int {
	return (int(wd)+6)%7 + 1
}

// floorDiv returns the quotient of a and b, rounded towards negative
// infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// A Date represents a day in the proleptic Gregorian calendar, with no
// time-of-day and no timezone. The zero value is January 1st of year 0.
//
// Dates can be compared with ==; for ordering, use Compare, Before or
// After.
type Date struct {
	year    int
	ordinal int // day of year, 1..=daysInYear(year); the zero value means day 1
}

// The bounds of the representable range.
var (
	DateMin = Date{minYear, 1}
	DateMax = Date{maxYear, 365} // 9999 is not a leap year
)

// NewDate returns the Date for the given calendar components. It fails if
// the year is outside ±9999, or if day does not exist in the given month
// and year.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, rangeError("year", int64(year), minYear, maxYear)
	}
	if month < time.January || month > time.December {
		return Date{}, rangeError("month", int64(month), 1, 12)
	}
	if day < 1 || day > daysIn(month, year) {
		return Date{}, rangeErrorCond("day", int64(day), 1, int64(daysIn(month, year)))
	}
	ordinal := daysBefore[month-1] + day
	if isLeap(year) && month > time.February {
		ordinal++
	}
	return Date{year, ordinal}, nil
}

// MustDate is like NewDate but panics on invalid components. It simplifies
// initialization of package variables and test fixtures.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateFromOrdinal returns the Date for the given year and day-of-year. It
// fails if ordinal exceeds 365, or 366 in leap years.
func DateFromOrdinal(year, ordinal int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, rangeError("year", int64(year), minYear, maxYear)
	}
	if ordinal < 1 || ordinal > daysInYear(year) {
		return Date{}, rangeErrorCond("ordinal", int64(ordinal), 1, int64(daysInYear(year)))
	}
	return Date{year, ordinal}, nil
}

// DateFromISOWeek returns the Date for the given ISO 8601 week date. It
// fails if week exceeds the number of ISO weeks of year (52 or 53). Note
// that the resulting calendar year may differ from the ISO year near year
// boundaries.
func DateFromISOWeek(year, week int, weekday time.Weekday) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, rangeError("year", int64(year), minYear, maxYear)
	}
	if week < 1 || week > weeksInYear(year) {
		return Date{}, rangeErrorCond("week", int64(week), 1, int64(weeksInYear(year)))
	}

	// Determine the ordinal of the Thursday that anchors week 1 from the
	// weekday of January 4th.
	adjYear := int64(year - 1)
	raw := 365*adjYear + floorDiv(adjYear, 4) - floorDiv(adjYear, 100) + floorDiv(adjYear, 400)
	var jan4 int
	switch raw % 7 {
	case -6, 1:
		jan4 = 8
	case -5, 2:
		jan4 = 9
	case -4, 3:
		jan4 = 10
	case -3, 4:
		jan4 = 4
	case -2, 5:
		jan4 = 5
	case -1, 6:
		jan4 = 6
	default:
		jan4 = 7
	}

	ordinal := week*7 + numberFromMonday(weekday) - jan4
	switch {
	case ordinal <= 0:
		return Date{year - 1, ordinal + daysInYear(year-1)}, nil
	case ordinal > daysInYear(year):
		return Date{year + 1, ordinal - daysInYear(year)}, nil
	}
	return Date{year, ordinal}, nil
}

// DateFromJulianDay returns the Date with the given Julian day number. It
// fails if the resulting year would be outside ±9999.
func DateFromJulianDay(jd int) (Date, error) {
	if jd < DateMin.JulianDay() || jd > DateMax.JulianDay() {
		return Date{}, rangeError("julian_day", int64(jd), int64(DateMin.JulianDay()), int64(DateMax.JulianDay()))
	}
	return dateFromJulianDay(jd), nil
}

// dateFromJulianDay converts a Julian day number known to be in range. The
// algorithm is derived from one provided by Peter Baum.
func dateFromJulianDay(jd int) Date {
	z := int64(jd) - 1_721_119
	g := 100*z - 25
	a := g / 3_652_425
	b := a - a/4
	year := int(floorDiv(100*b+g, 36_525))
	ordinal := int(b + z - floorDiv(36_525*int64(year), 100))

	// The year computed above starts in March; fold January and February
	// into the regular year.
	if isLeap(year) {
		ordinal += 60
		if ordinal >= 367 {
			ordinal -= 366
			year++
		} else if ordinal < 1 {
			ordinal += 366
			year--
		}
	} else {
		ordinal += 59
		if ordinal >= 366 {
			ordinal -= 365
			year++
		} else if ordinal < 1 {
			ordinal += 365
			year--
		}
	}
	return Date{year, ordinal}
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Date {
	y, m, d := time.Now().In(loc).Date()
	date, _ := NewDate(y, m, d)
	return date
}

// Year returns the year in which d occurs.
func (d Date) Year() int { return d.year }

// Ordinal returns the day of the year specified by d, in the range [1,365]
// for non-leap years, and [1,366] in leap years.
func (d Date) Ordinal() int {
	if d.ordinal == 0 {
		return 1
	}
	return d.ordinal
}

// Month returns the month of the year specified by d.
func (d Date) Month() time.Month {
	m, _ := d.monthDay()
	return m
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	_, day := d.monthDay()
	return day
}

// monthDay computes the month and day-of-month from the ordinal.
func (d Date) monthDay() (time.Month, int) {
	ordinal := d.Ordinal()
	if isLeap(d.year) {
		switch {
		case ordinal == 31+29:
			return time.February, 29
		case ordinal > 31+29:
			// After leap day; pretend it wasn't there.
			ordinal--
		}
	}
	// Estimate month on assumption that every month has 31 days. The
	// estimate may be too low by at most one month, so adjust.
	month := time.Month((ordinal-1)/31) + 1
	if ordinal > daysBefore[month] {
		month++
	}
	return month, ordinal - daysBefore[month-1]
}

// Date returns the year, month and day specified by d.
func (d Date) Date() (year int, month time.Month, day int) {
	month, day = d.monthDay()
	return d.year, month, day
}

// OrdinalDate returns the year and day-of-year specified by d.
func (d Date) OrdinalDate() (year, ordinal int) {
	return d.year, d.Ordinal()
}

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
// Week ranges from 1 to 53. Jan 01 to Jan 03 of year n might belong to
// week 52 or 53 of year n-1, and Dec 29 to Dec 31 might belong to week 1
// of year n+1.
func (d Date) ISOWeek() (year, week int) {
	week = (d.Ordinal() + 10 - numberFromMonday(d.Weekday())) / 7
	switch {
	case week == 0:
		return d.year - 1, weeksInYear(d.year - 1)
	case week == 53 && weeksInYear(d.year) == 52:
		return d.year + 1, 1
	}
	return d.year, week
}

// ISOWeekDate returns the full ISO 8601 week date of d: the ISO year, the
// week number and the weekday.
func (d Date) ISOWeekDate() (year, week int, weekday time.Weekday) {
	year, week = d.ISOWeek()
	return year, week, d.Weekday()
}

// SundayBasedWeek returns the week number of d where week 1 begins on the
// first Sunday of the year, in the range [0,53].
func (d Date) SundayBasedWeek() int {
	return (d.Ordinal() - int(d.Weekday()) + 6) / 7
}

// MondayBasedWeek returns the week number of d where week 1 begins on the
// first Monday of the year, in the range [0,53].
func (d Date) MondayBasedWeek() int {
	return (d.Ordinal() - (int(d.Weekday())+6)%7 + 6) / 7
}

// Weekday returns the day of the week specified by d.
func (d Date) Weekday() time.Weekday {
	switch d.JulianDay() % 7 {
	case -6, 1:
		return time.Tuesday
	case -5, 2:
		return time.Wednesday
	case -4, 3:
		return time.Thursday
	case -3, 4:
		return time.Friday
	case -2, 5:
		return time.Saturday
	case -1, 6:
		return time.Sunday
	}
	return time.Monday
}

// JulianDay returns the Julian day number of d, the continuous count of
// days since the beginning of the Julian period. The algorithm is derived
// from one provided by Peter Baum.
func (d Date) JulianDay() int {
	year := int64(d.year - 1)
	return int(int64(d.Ordinal()) + 365*year + floorDiv(year, 4) - floorDiv(year, 100) + floorDiv(year, 400) + 1_721_425)
}

// NextDay returns the date following d. The second return value is false
// if d is DateMax.
func (d Date) NextDay() (Date, bool) {
	if d == DateMax {
		return Date{}, false
	}
	if d.Ordinal() == daysInYear(d.year) {
		return Date{d.year + 1, 1}, true
	}
	return Date{d.year, d.Ordinal() + 1}, true
}

// PreviousDay returns the date preceding d. The second return value is
// false if d is DateMin.
func (d Date) PreviousDay() (Date, bool) {
	if d.Ordinal() != 1 {
		return Date{d.year, d.Ordinal() - 1}, true
	}
	if d == DateMin {
		return Date{}, false
	}
	return Date{d.year - 1, daysInYear(d.year - 1)}, true
}

// CheckedAdd computes d + dur, additionally reporting whether the result
// is representable. Only whole days of dur are taken into account; the
// sub-day part is ignored.
func (d Date) CheckedAdd(dur Duration) (Date, bool) {
	jd := int64(d.JulianDay()) + dur.WholeDays()
	if jd < int64(DateMin.JulianDay()) || jd > int64(DateMax.JulianDay()) {
		return Date{}, false
	}
	return dateFromJulianDay(int(jd)), true
}

// CheckedSub computes d - dur, additionally reporting whether the result
// is representable. Only whole days of dur are taken into account; the
// sub-day part is ignored.
func (d Date) CheckedSub(dur Duration) (Date, bool) {
	jd := int64(d.JulianDay()) - dur.WholeDays()
	if jd < int64(DateMin.JulianDay()) || jd > int64(DateMax.JulianDay()) {
		return Date{}, false
	}
	return dateFromJulianDay(int(jd)), true
}

// SaturatingAdd computes d + dur, clamping to DateMin or DateMax on
// overflow. Only whole days of dur are taken into account.
func (d Date) SaturatingAdd(dur Duration) Date {
	if date, ok := d.CheckedAdd(dur); ok {
		return date
	}
	if dur.IsNegative() {
		return DateMin
	}
	return DateMax
}

// SaturatingSub computes d - dur, clamping to DateMin or DateMax on
// overflow. Only whole days of dur are taken into account.
func (d Date) SaturatingSub(dur Duration) Date {
	if date, ok := d.CheckedSub(dur); ok {
		return date
	}
	if dur.IsNegative() {
		return DateMax
	}
	return DateMin
}

// Add computes d + dur, taking only whole days of dur into account. It
// panics if the result is out of range; use CheckedAdd or SaturatingAdd if
// overflow must be tolerated.
func (d Date) Add(dur Duration) Date {
	date, ok := d.CheckedAdd(dur)
	if !ok {
		panic(errOutOfRange)
	}
	return date
}

// Sub computes d - dur, taking only whole days of dur into account. It
// panics if the result is out of range; use CheckedSub or SaturatingSub if
// overflow must be tolerated.
func (d Date) Sub(dur Duration) Date {
	date, ok := d.CheckedSub(dur)
	if !ok {
		panic(errOutOfRange)
	}
	return date
}

// SubDate returns the Duration d - u in whole days.
func (d Date) SubDate(u Date) Duration {
	return Days(int64(d.JulianDay() - u.JulianDay()))
}

// AddDate returns the date corresponding to adding the given number of
// years, months, and days to d. For example, AddDate(-1, 2, 3) applied to
// January 1, 2011 returns March 4, 2010.
//
// AddDate normalizes its result in the same way that time.Date does, so,
// for example, adding one month to October 31 yields December 1, the
// normalized form for November 31. It panics if the result is out of
// range.
func (d Date) AddDate(years, months, days int) Date {
	year, month, day := d.Date()
	m := int(month) - 1 + months
	year, m = norm(year+years, m, 12)
	month = time.Month(m) + 1

	ordinal := daysBefore[month-1] + day
	if isLeap(year) && month > time.February {
		ordinal++
	}
	jd := int64((Date{year, 1}).JulianDay()) + int64(ordinal-1) + int64(days)
	if jd < int64(DateMin.JulianDay()) || jd > int64(DateMax.JulianDay()) {
		panic(errOutOfRange)
	}
	return dateFromJulianDay(int(jd))
}

// ReplaceYear returns d with the year replaced, keeping month and day. It
// fails if the new year is out of range, or if d is February 29th and the
// new year is not a leap year.
func (d Date) ReplaceYear(year int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, rangeError("year", int64(year), minYear, maxYear)
	}
	ordinal := d.Ordinal()
	if ordinal <= 31+28 {
		// Before any possible leap day; no adjustment needed.
		return Date{year, ordinal}, nil
	}
	switch srcLeap, dstLeap := isLeap(d.year), isLeap(year); {
	case srcLeap == dstLeap:
		return Date{year, ordinal}, nil
	case srcLeap && ordinal == 31+29:
		return Date{}, rangeErrorCond("day", 29, 1, 28)
	case srcLeap:
		return Date{year, ordinal - 1}, nil
	default:
		return Date{year, ordinal + 1}, nil
	}
}

// ReplaceMonth returns d with the month replaced, keeping year and day. It
// fails if the day does not exist in the new month.
func (d Date) ReplaceMonth(month time.Month) (Date, error) {
	return NewDate(d.year, month, d.Day())
}

// ReplaceDay returns d with the day of the month replaced. It fails if the
// day does not exist in the month of d.
func (d Date) ReplaceDay(day int) (Date, error) {
	return NewDate(d.year, d.Month(), day)
}

// WithTime combines d with the given time-of-day into a DateTime.
func (d Date) WithTime(t Time) DateTime {
	return DateTime{d, t}
}

// Midnight returns the DateTime at the start of d.
func (d Date) Midnight() DateTime {
	return DateTime{date: d}
}

// WithHMS combines d with the given clock reading into a DateTime. It
// fails if the clock components are out of range.
func (d Date) WithHMS(hour, minute, second int) (DateTime, error) {
	t, err := NewTime(hour, minute, second)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// WithHMSMilli combines d with the given clock reading into a DateTime.
// It fails if the clock components are out of range.
func (d Date) WithHMSMilli(hour, minute, second, millisecond int) (DateTime, error) {
	t, err := NewTimeMilli(hour, minute, second, millisecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// WithHMSMicro combines d with the given clock reading into a DateTime.
// It fails if the clock components are out of range.
func (d Date) WithHMSMicro(hour, minute, second, microsecond int) (DateTime, error) {
	t, err := NewTimeMicro(hour, minute, second, microsecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// WithHMSNano combines d with the given clock reading into a DateTime. It
// fails if the clock components are out of range.
func (d Date) WithHMSNano(hour, minute, second, nanosecond int) (DateTime, error) {
	t, err := NewTimeNano(hour, minute, second, nanosecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// Compare returns -1 if d is before u, 0 if they are equal and +1 if d is
// after u.
func (d Date) Compare(u Date) int {
	switch {
	case d.year < u.year:
		return -1
	case d.year > u.year:
		return 1
	case d.Ordinal() < u.Ordinal():
		return -1
	case d.Ordinal() > u.Ordinal():
		return 1
	}
	return 0
}

// Before reports whether d is before u.
func (d Date) Before(u Date) bool { return d.Compare(u) < 0 }

// After reports whether d is after u.
func (d Date) After(u Date) bool { return d.Compare(u) > 0 }

// In returns the moment midnight of d begins in the given location.
func (d Date) In(loc *time.Location) time.Time {
	year, month, day := d.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// GoString implements fmt.GoStringer and formats d to be printed in Go
// source code.
func (d Date) GoString() string {
	year, month, day := d.Date()
	return fmt.Sprintf("civil.MustDate(%d, time.%s, %d)", year, month, day)
}

// String returns the date formatted as ISO 8601.
//
// The returned string is meant for debugging; for a stable serialized
// representation, use d.MarshalText or d.MarshalBinary.
func (d Date) String() string {
	return d.Format(DateOnly)
}

// MarshalText implements the encoding.TextMarshaler interface. The date is
// formatted in ISO 8601 format.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// date must be in ISO 8601 format.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(DateOnly, string(b))
	if err == nil {
		*d = v
	}
	return err
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// date is represented as a [binary.Varint] of its Julian day number.
func (d Date) MarshalBinary() ([]byte, error) {
	b := make([]byte, binary.MaxVarintLen64)
	return b[:binary.PutVarint(b, int64(d.JulianDay()))], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Date) UnmarshalBinary(b []byte) error {
	v, i := binary.Varint(b)
	switch {
	case i == 0:
		return errors.New("encoded date truncated")
	case i < 0 || int64(int(v)) != v:
		return errors.New("encoded date overflows int")
	case i != len(b):
		return errors.New("extra data after date")
	}
	date, err := DateFromJulianDay(int(v))
	if err != nil {
		return err
	}
	*d = date
	return nil
}
