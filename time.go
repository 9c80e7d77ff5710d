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

// A Time is a wall-clock reading within an unspecified day, with nanosecond
// precision. All minutes are assumed to have exactly 60 seconds; no attempt
// is made to handle leap seconds.
//
// The zero value is midnight. Times can be compared with ==; for ordering,
// use Compare, Before or After, which assume both readings belong to the
// same calendar date.
type Time struct {
	hour       uint8
	minute     uint8
	second     uint8
	nanosecond uint32
}

var (
	// Midnight is the Time at the start of a day, 00:00:00.0.
	Midnight = Time{}
	// TimeMax is the latest representable Time, 23:59:59.999999999.
	TimeMax = Time{23, 59, 59, nanosPerSecond - 1}
)

// dayAdjustment reports whether a wrapping clock operation rolled the date
// backward, not at all, or forward.
type dayAdjustment int8

const (
	dayPrevious dayAdjustment = iota - 1
	dayUnchanged
	dayNext
)

// NewTime returns the Time for the given clock components. It fails if any
// component is out of range.
func NewTime(hour, minute, second int) (Time, error) {
	return NewTimeNano(hour, minute, second, 0)
}

// NewTimeMilli returns the Time for the given clock components with
// millisecond precision. It fails if any component is out of range.
func NewTimeMilli(hour, minute, second, millisecond int) (Time, error) {
	if millisecond < 0 || millisecond > 999 {
		return Time{}, rangeError("millisecond", int64(millisecond), 0, 999)
	}
	return NewTimeNano(hour, minute, second, millisecond*nanosPerMilli)
}

// NewTimeMicro returns the Time for the given clock components with
// microsecond precision. It fails if any component is out of range.
func NewTimeMicro(hour, minute, second, microsecond int) (Time, error) {
	if microsecond < 0 || microsecond > 999_999 {
		return Time{}, rangeError("microsecond", int64(microsecond), 0, 999_999)
	}
	return NewTimeNano(hour, minute, second, microsecond*nanosPerMicro)
}

// NewTimeNano returns the Time for the given clock components with
// nanosecond precision. It fails if any component is out of range.
func NewTimeNano(hour, minute, second, nanosecond int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, rangeError("hour", int64(hour), 0, 23)
	}
	if minute < 0 || minute > 59 {
		return Time{}, rangeError("minute", int64(minute), 0, 59)
	}
	if second < 0 || second > 59 {
		return Time{}, rangeError("second", int64(second), 0, 59)
	}
	if nanosecond < 0 || nanosecond > nanosPerSecond-1 {
		return Time{}, rangeError("nanosecond", int64(nanosecond), 0, nanosPerSecond-1)
	}
	return Time{uint8(hour), uint8(minute), uint8(second), uint32(nanosecond)}, nil
}

// MustTime is like NewTime but panics on invalid components. It simplifies
// initialization of package variables and test fixtures.
func MustTime(hour, minute, second int) Time {
	t, err := NewTime(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour of t, in the range [0,23].
func (t Time) Hour() int { return int(t.hour) }

// Minute returns the minute of t, in the range [0,59].
func (t Time) Minute() int { return int(t.minute) }

// Second returns the second of t, in the range [0,59].
func (t Time) Second() int { return int(t.second) }

// Millisecond returns the milliseconds within the second, in the range
// [0,999].
func (t Time) Millisecond() int { return int(t.nanosecond) / nanosPerMilli }

// Microsecond returns the microseconds within the second, in the range
// [0,999999].
func (t Time) Microsecond() int { return int(t.nanosecond) / nanosPerMicro }

// Nanosecond returns the nanoseconds within the second, in the range
// [0,999999999].
func (t Time) Nanosecond() int { return int(t.nanosecond) }

// HMS returns the hour, minute and second of t.
func (t Time) HMS() (hour, minute, second int) {
	return int(t.hour), int(t.minute), int(t.second)
}

// HMSMilli returns the hour, minute, second and millisecond of t.
func (t Time) HMSMilli() (hour, minute, second, millisecond int) {
	return int(t.hour), int(t.minute), int(t.second), t.Millisecond()
}

// HMSMicro returns the hour, minute, second and microsecond of t.
func (t Time) HMSMicro() (hour, minute, second, microsecond int) {
	return int(t.hour), int(t.minute), int(t.second), t.Microsecond()
}

// HMSNano returns the hour, minute, second and nanosecond of t.
func (t Time) HMSNano() (hour, minute, second, nanosecond int) {
	return int(t.hour), int(t.minute), int(t.second), int(t.nanosecond)
}

// carry normalizes v into [0,modulus), returning the corrected value and
// the carry into the next larger unit. v must be within one modulus of the
// valid range.
func carry(v, modulus int64) (int64, int64) {
	switch {
	case v >= modulus:
		return v - modulus, 1
	case v < 0:
		return v + modulus, -1
	}
	return v, 0
}

// adjustingAdd adds the sub-day part of d to the clock, wrapping at
// midnight. It reports whether the result lies on the previous, the same,
// or the next date.
func (t Time) adjustingAdd(d Duration) (dayAdjustment, Time) {
	nanosecond := int64(t.nanosecond) + int64(d.SubsecNanoseconds())
	second := int64(t.second) + d.WholeSeconds()%secondsPerMinute
	minute := int64(t.minute) + d.WholeMinutes()%minutesPerHour
	hour := int64(t.hour) + d.WholeHours()%hoursPerDay

	var c int64
	nanosecond, c = carry(nanosecond, nanosPerSecond)
	second += c
	second, c = carry(second, secondsPerMinute)
	minute += c
	minute, c = carry(minute, minutesPerHour)
	hour += c

	adj := dayUnchanged
	if hour >= hoursPerDay {
		hour -= hoursPerDay
		adj = dayNext
	} else if hour < 0 {
		hour += hoursPerDay
		adj = dayPrevious
	}
	return adj, Time{uint8(hour), uint8(minute), uint8(second), uint32(nanosecond)}
}

// adjustingSub subtracts the sub-day part of d from the clock, wrapping at
// midnight. It reports whether the result lies on the previous, the same,
// or the next date.
func (t Time) adjustingSub(d Duration) (dayAdjustment, Time) {
	nanosecond := int64(t.nanosecond) - int64(d.SubsecNanoseconds())
	second := int64(t.second) - d.WholeSeconds()%secondsPerMinute
	minute := int64(t.minute) - d.WholeMinutes()%minutesPerHour
	hour := int64(t.hour) - d.WholeHours()%hoursPerDay

	var c int64
	nanosecond, c = carry(nanosecond, nanosPerSecond)
	second += c
	second, c = carry(second, secondsPerMinute)
	minute += c
	minute, c = carry(minute, minutesPerHour)
	hour += c

	adj := dayUnchanged
	if hour >= hoursPerDay {
		hour -= hoursPerDay
		adj = dayNext
	} else if hour < 0 {
		hour += hoursPerDay
		adj = dayPrevious
	}
	return adj, Time{uint8(hour), uint8(minute), uint8(second), uint32(nanosecond)}
}

// adjustingAddStd adds the sub-day part of the non-negative d to the
// clock, wrapping at midnight. It reports whether the result lies on the
// next date.
func (t Time) adjustingAddStd(d time.Duration) (nextDay bool, _ Time) {
	secs := int64(d) / nanosPerSecond
	nanosecond := int64(t.nanosecond) + int64(d)%nanosPerSecond
	second := int64(t.second) + secs%secondsPerMinute
	minute := int64(t.minute) + secs/secondsPerMinute%minutesPerHour
	hour := int64(t.hour) + secs/secondsPerHour%hoursPerDay

	var c int64
	nanosecond, c = carry(nanosecond, nanosPerSecond)
	second += c
	second, c = carry(second, secondsPerMinute)
	minute += c
	minute, c = carry(minute, minutesPerHour)
	hour += c

	if hour >= hoursPerDay {
		hour -= hoursPerDay
		nextDay = true
	}
	return nextDay, Time{uint8(hour), uint8(minute), uint8(second), uint32(nanosecond)}
}

// adjustingSubStd subtracts the sub-day part of the non-negative d from
// the clock, wrapping at midnight. It reports whether the result lies on
// the previous date.
func (t Time) adjustingSubStd(d time.Duration) (previousDay bool, _ Time) {
	secs := int64(d) / nanosPerSecond
	nanosecond := int64(t.nanosecond) - int64(d)%nanosPerSecond
	second := int64(t.second) - secs%secondsPerMinute
	minute := int64(t.minute) - secs/secondsPerMinute%minutesPerHour
	hour := int64(t.hour) - secs/secondsPerHour%hoursPerDay

	var c int64
	nanosecond, c = carry(nanosecond, nanosPerSecond)
	second += c
	second, c = carry(second, secondsPerMinute)
	minute += c
	minute, c = carry(minute, minutesPerHour)
	hour += c

	if hour < 0 {
		hour += hoursPerDay
		previousDay = true
	}
	return previousDay, Time{uint8(hour), uint8(minute), uint8(second), uint32(nanosecond)}
}

// Add returns the clock reading d after t, wrapping around midnight. Use
// [DateTime.Add] if the date must follow along.
func (t Time) Add(d Duration) Time {
	_, nt := t.adjustingAdd(d)
	return nt
}

// Sub returns the clock reading d before t, wrapping around midnight. Use
// [DateTime.Sub] if the date must follow along.
func (t Time) Sub(d Duration) Time {
	_, nt := t.adjustingSub(d)
	return nt
}

// AddDuration is like Add for a [time.Duration].
func (t Time) AddDuration(d time.Duration) Time {
	if d < 0 {
		// Not adjustingSubStd(-d): the negation overflows for MinInt64.
		_, nt := t.adjustingAdd(DurationFromStd(d))
		return nt
	}
	_, nt := t.adjustingAddStd(d)
	return nt
}

// SubDuration is like Sub for a [time.Duration].
func (t Time) SubDuration(d time.Duration) Time {
	if d < 0 {
		_, nt := t.adjustingSub(DurationFromStd(d))
		return nt
	}
	_, nt := t.adjustingSubStd(d)
	return nt
}

// SubTime returns the Duration t - u, assuming both readings belong to the
// same calendar date.
func (t Time) SubTime(u Time) Duration {
	seconds := (int64(t.hour)-int64(u.hour))*secondsPerHour +
		(int64(t.minute)-int64(u.minute))*secondsPerMinute +
		int64(t.second) - int64(u.second)
	return NewDuration(seconds, int64(t.nanosecond)-int64(u.nanosecond))
}

// ReplaceHour returns t with the hour replaced. It fails if hour is out of
// range.
func (t Time) ReplaceHour(hour int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, rangeError("hour", int64(hour), 0, 23)
	}
	t.hour = uint8(hour)
	return t, nil
}

// ReplaceMinute returns t with the minute replaced. It fails if minute is
// out of range.
func (t Time) ReplaceMinute(minute int) (Time, error) {
	if minute < 0 || minute > 59 {
		return Time{}, rangeError("minute", int64(minute), 0, 59)
	}
	t.minute = uint8(minute)
	return t, nil
}

// ReplaceSecond returns t with the second replaced. It fails if second is
// out of range.
func (t Time) ReplaceSecond(second int) (Time, error) {
	if second < 0 || second > 59 {
		return Time{}, rangeError("second", int64(second), 0, 59)
	}
	t.second = uint8(second)
	return t, nil
}

// ReplaceMillisecond returns t with the sub-second part replaced by whole
// milliseconds. It fails if millisecond is out of range.
func (t Time) ReplaceMillisecond(millisecond int) (Time, error) {
	if millisecond < 0 || millisecond > 999 {
		return Time{}, rangeError("millisecond", int64(millisecond), 0, 999)
	}
	t.nanosecond = uint32(millisecond * nanosPerMilli)
	return t, nil
}

// ReplaceMicrosecond returns t with the sub-second part replaced by whole
// microseconds. It fails if microsecond is out of range.
func (t Time) ReplaceMicrosecond(microsecond int) (Time, error) {
	if microsecond < 0 || microsecond > 999_999 {
		return Time{}, rangeError("microsecond", int64(microsecond), 0, 999_999)
	}
	t.nanosecond = uint32(microsecond * nanosPerMicro)
	return t, nil
}

// ReplaceNanosecond returns t with the sub-second part replaced. It fails
// if nanosecond is out of range.
func (t Time) ReplaceNanosecond(nanosecond int) (Time, error) {
	if nanosecond < 0 || nanosecond > nanosPerSecond-1 {
		return Time{}, rangeError("nanosecond", int64(nanosecond), 0, nanosPerSecond-1)
	}
	t.nanosecond = uint32(nanosecond)
	return t, nil
}

// Compare returns -1 if t is before u, 0 if they are equal and +1 if t is
// after u, assuming both readings belong to the same calendar date.
func (t Time) Compare(u Time) int {
	a := int64(t.hour)*secondsPerHour + int64(t.minute)*secondsPerMinute + int64(t.second)
	b := int64(u.hour)*secondsPerHour + int64(u.minute)*secondsPerMinute + int64(u.second)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case t.nanosecond < u.nanosecond:
		return -1
	case t.nanosecond > u.nanosecond:
		return 1
	}
	return 0
}

// Before reports whether t is before u.
func (t Time) Before(u Time) bool { return t.Compare(u) < 0 }

// After reports whether t is after u.
func (t Time) After(u Time) bool { return t.Compare(u) > 0 }

// GoString implements fmt.GoStringer and formats t to be printed in Go
// source code.
func (t Time) GoString() string {
	if t.nanosecond != 0 {
		return fmt.Sprintf("civil.Time{%d, %d, %d, %d}", t.hour, t.minute, t.second, t.nanosecond)
	}
	return fmt.Sprintf("civil.MustTime(%d, %d, %d)", t.hour, t.minute, t.second)
}

// String returns the time formatted as ISO 8601, with the sub-second part
// omitted when zero.
//
// The returned string is meant for debugging; for a stable serialized
// representation, use t.MarshalText or t.MarshalBinary.
func (t Time) String() string {
	return string(t.AppendFormat(nil, timeWithFraction))
}

// MarshalText implements the encoding.TextMarshaler interface. The time is
// formatted in ISO 8601 format.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// time must be in ISO 8601 format.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTime(timeWithFraction, string(b))
	if err == nil {
		*t = v
	}
	return err
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// time is represented as two [binary.Uvarint] values, the second of the
// day and the nanosecond.
func (t Time) MarshalBinary() ([]byte, error) {
	b := make([]byte, 2*binary.MaxVarintLen64)
	n := binary.PutUvarint(b, uint64(t.hour)*secondsPerHour+uint64(t.minute)*secondsPerMinute+uint64(t.second))
	n += binary.PutUvarint(b[n:], uint64(t.nanosecond))
	return b[:n], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (t *Time) UnmarshalBinary(b []byte) error {
	sec, i := binary.Uvarint(b)
	if i <= 0 {
		return errors.New("encoded time truncated")
	}
	nsec, j := binary.Uvarint(b[i:])
	switch {
	case j <= 0:
		return errors.New("encoded time truncated")
	case i+j != len(b):
		return errors.New("extra data after time")
	case sec >= secondsPerDay || nsec >= nanosPerSecond:
		return errors.New("encoded time out of range")
	}
	*t = Time{
		hour:       uint8(sec / secondsPerHour),
		minute:     uint8(sec / secondsPerMinute % minutesPerHour),
		second:     uint8(sec % secondsPerMinute),
		nanosecond: uint32(nsec),
	}
	return nil
}
