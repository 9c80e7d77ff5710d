// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// A DateTime combines a Date with a wall-clock Time. It carries no
// timezone; interpreting it as an instant requires an external Offset or
// [time.Location].
//
// The zero value is midnight of January 1st of year 0. DateTimes can be
// compared with ==; for ordering, use Compare, Before or After.
type DateTime struct {
	date Date
	time Time
}

// The bounds of the representable range.
var (
	DateTimeMin = DateTime{DateMin, Midnight}
	DateTimeMax = DateTime{DateMax, TimeMax}
)

// NewDateTime combines a date and a time-of-day.
func NewDateTime(date Date, time Time) DateTime {
	return DateTime{date, time}
}

// DateTimeFromTime returns the DateTime read off the wall clock of t, in
// t's location. The monotonic clock reading and the location itself are
// discarded. It panics if t's year is outside -9999 through 9999.
func DateTimeFromTime(t time.Time) DateTime {
	year, month, day := t.Date()
	date, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	tod, _ := NewTimeNano(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
	return DateTime{date, tod}
}

// Now returns the current wall-clock DateTime in the given location.
func Now(loc *time.Location) DateTime {
	return DateTimeFromTime(time.Now().In(loc))
}

// Date returns the calendar date of p.
func (p DateTime) Date() Date { return p.date }

// Time returns the time-of-day of p.
func (p DateTime) Time() Time { return p.time }

// Year returns the year in which p occurs.
func (p DateTime) Year() int { return p.date.Year() }

// Month returns the month of the year of p.
func (p DateTime) Month() time.Month { return p.date.Month() }

// Day returns the day of the month of p.
func (p DateTime) Day() int { return p.date.Day() }

// Ordinal returns the day of the year of p.
func (p DateTime) Ordinal() int { return p.date.Ordinal() }

// Weekday returns the day of the week of p.
func (p DateTime) Weekday() time.Weekday { return p.date.Weekday() }

// ISOWeek returns the ISO 8601 year and week number of p.
func (p DateTime) ISOWeek() (year, week int) { return p.date.ISOWeek() }

// Hour returns the hour of p, in the range [0,23].
func (p DateTime) Hour() int { return p.time.Hour() }

// Minute returns the minute of p, in the range [0,59].
func (p DateTime) Minute() int { return p.time.Minute() }

// Second returns the second of p, in the range [0,59].
func (p DateTime) Second() int { return p.time.Second() }

// Millisecond returns the milliseconds within the second of p.
func (p DateTime) Millisecond() int { return p.time.Millisecond() }

// Microsecond returns the microseconds within the second of p.
func (p DateTime) Microsecond() int { return p.time.Microsecond() }

// Nanosecond returns the nanoseconds within the second of p.
func (p DateTime) Nanosecond() int { return p.time.Nanosecond() }

// CheckedAdd computes p + dur, additionally reporting whether the result
// is representable.
func (p DateTime) CheckedAdd(dur Duration) (DateTime, bool) {
	adj, tod := p.time.adjustingAdd(dur)
	date, ok := p.date.CheckedAdd(dur)
	if !ok {
		return DateTime{}, false
	}
	switch adj {
	case dayPrevious:
		date, ok = date.PreviousDay()
	case dayNext:
		date, ok = date.NextDay()
	}
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date, tod}, true
}

// CheckedSub computes p - dur, additionally reporting whether the result
// is representable.
func (p DateTime) CheckedSub(dur Duration) (DateTime, bool) {
	adj, tod := p.time.adjustingSub(dur)
	date, ok := p.date.CheckedSub(dur)
	if !ok {
		return DateTime{}, false
	}
	switch adj {
	case dayPrevious:
		date, ok = date.PreviousDay()
	case dayNext:
		date, ok = date.NextDay()
	}
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date, tod}, true
}

// SaturatingAdd computes p + dur, clamping to DateTimeMin or DateTimeMax
// on overflow.
func (p DateTime) SaturatingAdd(dur Duration) DateTime {
	if dt, ok := p.CheckedAdd(dur); ok {
		return dt
	}
	if dur.IsNegative() {
		return DateTimeMin
	}
	return DateTimeMax
}

// SaturatingSub computes p - dur, clamping to DateTimeMin or DateTimeMax
// on overflow.
func (p DateTime) SaturatingSub(dur Duration) DateTime {
	if dt, ok := p.CheckedSub(dur); ok {
		return dt
	}
	if dur.IsNegative() {
		return DateTimeMax
	}
	return DateTimeMin
}

// Add computes p + dur. It panics if the result is out of range; use
// CheckedAdd or SaturatingAdd if overflow must be tolerated.
func (p DateTime) Add(dur Duration) DateTime {
	dt, ok := p.CheckedAdd(dur)
	if !ok {
		panic(errOutOfRange)
	}
	return dt
}

// Sub computes p - dur. It panics if the result is out of range; use
// CheckedSub or SaturatingSub if overflow must be tolerated.
func (p DateTime) Sub(dur Duration) DateTime {
	dt, ok := p.CheckedSub(dur)
	if !ok {
		panic(errOutOfRange)
	}
	return dt
}

// AddDuration is like Add for a [time.Duration].
func (p DateTime) AddDuration(d time.Duration) DateTime {
	if d < 0 {
		// Not subStd(-d): the negation overflows for MinInt64.
		return p.Add(DurationFromStd(d))
	}
	return p.addStd(d)
}

// SubDuration is like Sub for a [time.Duration].
func (p DateTime) SubDuration(d time.Duration) DateTime {
	if d < 0 {
		return p.Sub(DurationFromStd(d))
	}
	return p.subStd(d)
}

func (p DateTime) addStd(d time.Duration) DateTime {
	nextDay, tod := p.time.adjustingAddStd(d)
	date := p.date.Add(Seconds(int64(d) / nanosPerSecond))
	if nextDay {
		var ok bool
		if date, ok = date.NextDay(); !ok {
			panic(errOutOfRange)
		}
	}
	return DateTime{date, tod}
}

func (p DateTime) subStd(d time.Duration) DateTime {
	previousDay, tod := p.time.adjustingSubStd(d)
	date := p.date.Sub(Seconds(int64(d) / nanosPerSecond))
	if previousDay {
		var ok bool
		if date, ok = date.PreviousDay(); !ok {
			panic(errOutOfRange)
		}
	}
	return DateTime{date, tod}
}

// SubDateTime returns the Duration p - u.
func (p DateTime) SubDateTime(u DateTime) Duration {
	return p.date.SubDate(u.date).Add(p.time.SubTime(u.time))
}

// ReplaceDate returns p with the calendar date replaced, keeping the
// time-of-day.
func (p DateTime) ReplaceDate(date Date) DateTime {
	p.date = date
	return p
}

// ReplaceTime returns p with the time-of-day replaced, keeping the
// calendar date.
func (p DateTime) ReplaceTime(t Time) DateTime {
	p.time = t
	return p
}

// OffsetToUTC reinterprets p, read off a clock displaced from UTC by o, as
// the equivalent UTC wall-clock reading. It panics if the result is out of
// range.
func (p DateTime) OffsetToUTC(o Offset) DateTime {
	second := int64(p.time.second) - int64(o.SecondsPastMinute())
	minute := int64(p.time.minute) - int64(o.MinutesPastHour())
	hour := int64(p.time.hour) - int64(o.WholeHours())
	year, ordinal := p.date.OrdinalDate()

	var c int64
	second, c = carry(second, secondsPerMinute)
	minute += c
	minute, c = carry(minute, minutesPerHour)
	hour += c
	if hour >= hoursPerDay {
		hour -= hoursPerDay
		ordinal++
	} else if hour < 0 {
		hour += hoursPerDay
		ordinal--
	}
	if ordinal > daysInYear(year) {
		ordinal -= daysInYear(year)
		year++
	} else if ordinal < 1 {
		year--
		ordinal += daysInYear(year)
	}

	if year < minYear || year > maxYear {
		panic(errOutOfRange)
	}
	return DateTime{
		date: Date{year, ordinal},
		time: Time{uint8(hour), uint8(minute), uint8(second), p.time.nanosecond},
	}
}

// UTCToOffset reinterprets p, read off a UTC clock, as the equivalent
// wall-clock reading at the given displacement from UTC. It panics if the
// result is out of range.
func (p DateTime) UTCToOffset(o Offset) DateTime {
	return p.OffsetToUTC(o.Neg())
}

// Compare returns -1 if p is before u, 0 if they are equal and +1 if p is
// after u.
func (p DateTime) Compare(u DateTime) int {
	if c := p.date.Compare(u.date); c != 0 {
		return c
	}
	return p.time.Compare(u.time)
}

// Before reports whether p is before u.
func (p DateTime) Before(u DateTime) bool { return p.Compare(u) < 0 }

// After reports whether p is after u.
func (p DateTime) After(u DateTime) bool { return p.Compare(u) > 0 }

// In returns the moment the wall clock of the given location reads p.
// The result is normalized by [time.Date], so it is only meaningful if p
// actually occurs in loc.
func (p DateTime) In(loc *time.Location) time.Time {
	year, month, day := p.date.Date()
	hour, minute, second, nanosecond := p.time.HMSNano()
	return time.Date(year, month, day, hour, minute, second, nanosecond, loc)
}

// GoString implements fmt.GoStringer and formats p to be printed in Go
// source code.
func (p DateTime) GoString() string {
	return fmt.Sprintf("%#v.WithTime(%#v)", p.date, p.time)
}

// String returns the date and time separated by a space, with the
// sub-second part omitted when zero.
//
// The returned string is meant for debugging; for a stable serialized
// representation, use p.MarshalText or p.MarshalBinary.
func (p DateTime) String() string {
	b := p.date.AppendFormat(nil, DateOnly)
	b = append(b, ' ')
	return string(p.time.AppendFormat(b, timeWithFraction))
}

// MarshalText implements the encoding.TextMarshaler interface. The value
// is formatted as RFC 3339 without an offset.
func (p DateTime) MarshalText() ([]byte, error) {
	return []byte(p.Format(dateTimeWithFraction)), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// value must be RFC 3339 without an offset.
func (p *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(dateTimeWithFraction, string(b))
	if err == nil {
		*p = v
	}
	return err
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// value is the concatenation of the binary representations of its date and
// its time.
func (p DateTime) MarshalBinary() ([]byte, error) {
	b := make([]byte, 3*binary.MaxVarintLen64)
	n := binary.PutVarint(b, int64(p.date.JulianDay()))
	sec := uint64(p.time.hour)*secondsPerHour + uint64(p.time.minute)*secondsPerMinute + uint64(p.time.second)
	n += binary.PutUvarint(b[n:], sec)
	n += binary.PutUvarint(b[n:], uint64(p.time.nanosecond))
	return b[:n], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (p *DateTime) UnmarshalBinary(b []byte) error {
	jd, i := binary.Varint(b)
	if i <= 0 || int64(int(jd)) != jd {
		return errors.New("encoded datetime malformed")
	}
	date, err := DateFromJulianDay(int(jd))
	if err != nil {
		return err
	}
	var t Time
	if err := t.UnmarshalBinary(b[i:]); err != nil {
		return err
	}
	*p = DateTime{date, t}
	return nil
}
