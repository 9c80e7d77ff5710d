// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import "fmt"

// An Offset is a fixed displacement from UTC, with second precision. The
// three components always share the same sign.
//
// The zero value is UTC itself.
type Offset struct {
	hours   int8
	minutes int8
	seconds int8
}

// UTC is the zero Offset.
var UTC = Offset{}

// NewOffset returns the Offset for the given components. Components of
// mixed sign are coerced to the sign of the largest non-zero unit, so
// NewOffset(1, -30, 0) means 1h30m east of UTC. It fails if any component
// is out of range.
func NewOffset(hours, minutes, seconds int) (Offset, error) {
	if hours < -23 || hours > 23 {
		return Offset{}, rangeError("hours", int64(hours), -23, 23)
	}
	if minutes < -59 || minutes > 59 {
		return Offset{}, rangeError("minutes", int64(minutes), -59, 59)
	}
	if seconds < -59 || seconds > 59 {
		return Offset{}, rangeError("seconds", int64(seconds), -59, 59)
	}
	if hours > 0 {
		if minutes < 0 {
			minutes = -minutes
		}
		if seconds < 0 {
			seconds = -seconds
		}
	} else if hours < 0 {
		if minutes > 0 {
			minutes = -minutes
		}
		if seconds > 0 {
			seconds = -seconds
		}
	} else if minutes > 0 && seconds < 0 {
		seconds = -seconds
	} else if minutes < 0 && seconds > 0 {
		seconds = -seconds
	}
	return Offset{int8(hours), int8(minutes), int8(seconds)}, nil
}

// OffsetFromSeconds returns the Offset for a total displacement in
// seconds. It fails if seconds does not fit within ±23:59:59.
func OffsetFromSeconds(seconds int) (Offset, error) {
	if seconds < -(secondsPerDay-1) || seconds > secondsPerDay-1 {
		return Offset{}, rangeError("seconds", int64(seconds), -(secondsPerDay - 1), secondsPerDay-1)
	}
	return Offset{
		hours:   int8(seconds / secondsPerHour),
		minutes: int8(seconds / secondsPerMinute % minutesPerHour),
		seconds: int8(seconds % secondsPerMinute),
	}, nil
}

// WholeHours returns the hours component of o, in the range [-23,23].
func (o Offset) WholeHours() int { return int(o.hours) }

// MinutesPastHour returns the minutes component of o, in the range
// [-59,59]. Its sign matches the other components.
func (o Offset) MinutesPastHour() int { return int(o.minutes) }

// SecondsPastMinute returns the seconds component of o, in the range
// [-59,59]. Its sign matches the other components.
func (o Offset) SecondsPastMinute() int { return int(o.seconds) }

// WholeMinutes returns the total displacement of o in whole minutes.
func (o Offset) WholeMinutes() int {
	return int(o.hours)*minutesPerHour + int(o.minutes)
}

// WholeSeconds returns the total displacement of o in seconds.
func (o Offset) WholeSeconds() int {
	return int(o.hours)*secondsPerHour + int(o.minutes)*secondsPerMinute + int(o.seconds)
}

// IsUTC reports whether o is zero.
func (o Offset) IsUTC() bool { return o == Offset{} }

// IsPositive reports whether o is east of UTC.
func (o Offset) IsPositive() bool { return o.WholeSeconds() > 0 }

// IsNegative reports whether o is west of UTC.
func (o Offset) IsNegative() bool { return o.WholeSeconds() < 0 }

// Neg returns the Offset of equal magnitude on the other side of UTC.
func (o Offset) Neg() Offset {
	return Offset{-o.hours, -o.minutes, -o.seconds}
}

// String returns the offset formatted as ±hh:mm:ss.
func (o Offset) String() string {
	sign := "+"
	h, m, s := o.hours, o.minutes, o.seconds
	if o.IsNegative() {
		sign, h, m, s = "-", -h, -m, -s
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// GoString implements fmt.GoStringer and formats o to be printed in Go
// source code.
func (o Offset) GoString() string {
	return fmt.Sprintf("civil.Offset{%d, %d, %d}", o.hours, o.minutes, o.seconds)
}
