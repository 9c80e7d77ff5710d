// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"math"
	"strconv"
	"time"
)

const (
	nanosPerMicro  = 1_000
	nanosPerMilli  = 1_000_000
	nanosPerSecond = 1_000_000_000

	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay

	minutesPerHour = 60
	hoursPerDay    = 24
)

// A Duration is a signed span of time with nanosecond precision.
//
// Unlike [time.Duration], which can only represent spans of roughly ±292
// years, a Duration stores whole seconds separately from the sub-second
// part and so covers the difference between any two representable
// [DateTime] values. The signs of the two parts always match.
type Duration struct {
	seconds     int64
	nanoseconds int32 // |nanoseconds| < nanosPerSecond, sign matches seconds
}

// The bounds of the representable range.
var (
	DurationMin = Duration{math.MinInt64, -nanosPerSecond + 1}
	DurationMax = Duration{math.MaxInt64, nanosPerSecond - 1}
)

// NewDuration returns the Duration for the given number of seconds and
// nanoseconds. The arguments may have differing signs and nanoseconds may
// lie outside ±1e9; they are normalized during the conversion.
func NewDuration(seconds, nanoseconds int64) Duration {
	seconds += nanoseconds / nanosPerSecond
	nanoseconds %= nanosPerSecond
	if seconds > 0 && nanoseconds < 0 {
		seconds--
		nanoseconds += nanosPerSecond
	} else if seconds < 0 && nanoseconds > 0 {
		seconds++
		nanoseconds -= nanosPerSecond
	}
	return Duration{seconds, int32(nanoseconds)}
}

// Weeks returns a Duration of the given number of weeks, clamping to
// DurationMin or DurationMax when the total seconds exceed int64.
func Weeks(weeks int64) Duration { return unit(weeks, secondsPerWeek) }

// Days returns a Duration of the given number of days, clamping to
// DurationMin or DurationMax when the total seconds exceed int64.
func Days(days int64) Duration { return unit(days, secondsPerDay) }

// Hours returns a Duration of the given number of hours, clamping to
// DurationMin or DurationMax when the total seconds exceed int64.
func Hours(hours int64) Duration { return unit(hours, secondsPerHour) }

// Minutes returns a Duration of the given number of minutes, clamping to
// DurationMin or DurationMax when the total seconds exceed int64.
func Minutes(minutes int64) Duration { return unit(minutes, secondsPerMinute) }

// unit scales n by the given number of seconds per unit, saturating on
// overflow.
func unit(n, secondsPer int64) Duration {
	if n > math.MaxInt64/secondsPer {
		return DurationMax
	}
	if n < math.MinInt64/secondsPer {
		return DurationMin
	}
	return Duration{seconds: n * secondsPer}
}

// Seconds returns a Duration of the given number of seconds.
func Seconds(seconds int64) Duration { return Duration{seconds: seconds} }

// Milliseconds returns a Duration of the given number of milliseconds.
func Milliseconds(ms int64) Duration {
	return Duration{ms / 1_000, int32(ms%1_000) * nanosPerMilli}
}

// Microseconds returns a Duration of the given number of microseconds.
func Microseconds(us int64) Duration {
	return Duration{us / 1_000_000, int32(us%1_000_000) * nanosPerMicro}
}

// Nanoseconds returns a Duration of the given number of nanoseconds.
func Nanoseconds(ns int64) Duration {
	return Duration{ns / nanosPerSecond, int32(ns % nanosPerSecond)}
}

// DurationFromStd converts a [time.Duration] into the equivalent Duration.
func DurationFromStd(d time.Duration) Duration {
	return Duration{int64(d) / nanosPerSecond, int32(int64(d) % nanosPerSecond)}
}

// Std returns the Duration as a [time.Duration]. The second return value
// reports whether the conversion was possible without overflow.
func (d Duration) Std() (time.Duration, bool) {
	if d.seconds > math.MaxInt64/nanosPerSecond || d.seconds < math.MinInt64/nanosPerSecond {
		return 0, false
	}
	ns := d.seconds * nanosPerSecond
	if d.nanoseconds > 0 && ns > math.MaxInt64-int64(d.nanoseconds) {
		return 0, false
	}
	if d.nanoseconds < 0 && ns < math.MinInt64-int64(d.nanoseconds) {
		return 0, false
	}
	return time.Duration(ns + int64(d.nanoseconds)), true
}

// WholeWeeks returns the number of whole weeks in the Duration, truncated
// towards zero.
func (d Duration) WholeWeeks() int64 { return d.seconds / secondsPerWeek }

// WholeDays returns the number of whole days in the Duration, truncated
// towards zero.
func (d Duration) WholeDays() int64 { return d.seconds / secondsPerDay }

// WholeHours returns the number of whole hours in the Duration, truncated
// towards zero.
func (d Duration) WholeHours() int64 { return d.seconds / secondsPerHour }

// WholeMinutes returns the number of whole minutes in the Duration,
// truncated towards zero.
func (d Duration) WholeMinutes() int64 { return d.seconds / secondsPerMinute }

// WholeSeconds returns the number of whole seconds in the Duration.
func (d Duration) WholeSeconds() int64 { return d.seconds }

// WholeMilliseconds returns the number of whole milliseconds in the
// Duration, truncated towards zero and saturated to the int64 range.
func (d Duration) WholeMilliseconds() int64 {
	const perSecond = nanosPerSecond / nanosPerMilli
	if d.seconds > math.MaxInt64/perSecond {
		return math.MaxInt64
	}
	if d.seconds < math.MinInt64/perSecond {
		return math.MinInt64
	}
	return d.seconds*perSecond + int64(d.nanoseconds)/nanosPerMilli
}

// WholeMicroseconds returns the number of whole microseconds in the
// Duration, truncated towards zero and saturated to the int64 range.
func (d Duration) WholeMicroseconds() int64 {
	const perSecond = nanosPerSecond / nanosPerMicro
	if d.seconds > math.MaxInt64/perSecond {
		return math.MaxInt64
	}
	if d.seconds < math.MinInt64/perSecond {
		return math.MinInt64
	}
	return d.seconds*perSecond + int64(d.nanoseconds)/nanosPerMicro
}

// WholeNanoseconds returns the number of nanoseconds in the Duration,
// saturated to the int64 range.
func (d Duration) WholeNanoseconds() int64 {
	if ns, ok := d.Std(); ok {
		return int64(ns)
	}
	if d.IsNegative() {
		return math.MinInt64
	}
	return math.MaxInt64
}

// SubsecNanoseconds returns the nanoseconds beyond the whole seconds, in
// the range -999,999,999..=999,999,999. Its sign matches the sign of the
// Duration.
func (d Duration) SubsecNanoseconds() int { return int(d.nanoseconds) }

// IsZero reports whether the Duration is zero.
func (d Duration) IsZero() bool { return d.seconds == 0 && d.nanoseconds == 0 }

// IsNegative reports whether the Duration is strictly negative.
func (d Duration) IsNegative() bool { return d.seconds < 0 || d.nanoseconds < 0 }

// IsPositive reports whether the Duration is strictly positive.
func (d Duration) IsPositive() bool { return d.seconds > 0 || d.nanoseconds > 0 }

// Neg returns the Duration with the opposite sign.
func (d Duration) Neg() Duration { return Duration{-d.seconds, -d.nanoseconds} }

// Abs returns the absolute value of the Duration.
func (d Duration) Abs() Duration {
	if d.IsNegative() {
		return d.Neg()
	}
	return d
}

// CheckedAdd computes d + u, additionally reporting whether the result is
// representable.
func (d Duration) CheckedAdd(u Duration) (Duration, bool) {
	seconds, ok := addInt64(d.seconds, u.seconds)
	if !ok {
		return Duration{}, false
	}
	nanoseconds := d.nanoseconds + u.nanoseconds
	if nanoseconds >= nanosPerSecond || seconds < 0 && nanoseconds > 0 {
		nanoseconds -= nanosPerSecond
		if seconds, ok = addInt64(seconds, 1); !ok {
			return Duration{}, false
		}
	} else if nanoseconds <= -nanosPerSecond || seconds > 0 && nanoseconds < 0 {
		nanoseconds += nanosPerSecond
		if seconds, ok = addInt64(seconds, -1); !ok {
			return Duration{}, false
		}
	}
	return Duration{seconds, nanoseconds}, true
}

// CheckedSub computes d - u, additionally reporting whether the result is
// representable.
func (d Duration) CheckedSub(u Duration) (Duration, bool) {
	seconds, ok := subInt64(d.seconds, u.seconds)
	if !ok {
		return Duration{}, false
	}
	nanoseconds := d.nanoseconds - u.nanoseconds
	if nanoseconds >= nanosPerSecond || seconds < 0 && nanoseconds > 0 {
		nanoseconds -= nanosPerSecond
		if seconds, ok = addInt64(seconds, 1); !ok {
			return Duration{}, false
		}
	} else if nanoseconds <= -nanosPerSecond || seconds > 0 && nanoseconds < 0 {
		nanoseconds += nanosPerSecond
		if seconds, ok = addInt64(seconds, -1); !ok {
			return Duration{}, false
		}
	}
	return Duration{seconds, nanoseconds}, true
}

// SaturatingAdd computes d + u, clamping to DurationMin or DurationMax on
// overflow.
func (d Duration) SaturatingAdd(u Duration) Duration {
	if sum, ok := d.CheckedAdd(u); ok {
		return sum
	}
	if d.IsNegative() {
		return DurationMin
	}
	return DurationMax
}

// SaturatingSub computes d - u, clamping to DurationMin or DurationMax on
// overflow.
func (d Duration) SaturatingSub(u Duration) Duration {
	if diff, ok := d.CheckedSub(u); ok {
		return diff
	}
	if d.IsNegative() {
		return DurationMin
	}
	return DurationMax
}

// Add computes d + u. It panics if the result is not representable; use
// CheckedAdd or SaturatingAdd if overflow must be tolerated.
func (d Duration) Add(u Duration) Duration {
	sum, ok := d.CheckedAdd(u)
	if !ok {
		panic(errOutOfRange)
	}
	return sum
}

// Sub computes d - u. It panics if the result is not representable; use
// CheckedSub or SaturatingSub if overflow must be tolerated.
func (d Duration) Sub(u Duration) Duration {
	diff, ok := d.CheckedSub(u)
	if !ok {
		panic(errOutOfRange)
	}
	return diff
}

// Compare returns -1 if d is shorter than u, 0 if they are equal and +1 if
// d is longer than u.
func (d Duration) Compare(u Duration) int {
	switch {
	case d.seconds < u.seconds:
		return -1
	case d.seconds > u.seconds:
		return 1
	case d.nanoseconds < u.nanoseconds:
		return -1
	case d.nanoseconds > u.nanoseconds:
		return 1
	}
	return 0
}

// String returns the Duration formatted using days, hours, minutes and
// seconds, e.g. "1d3h10m4.5s". The zero Duration formats as "0s".
func (d Duration) String() string {
	var b []byte
	if d.IsNegative() {
		b = append(b, '-')
	}
	sec, nsec := d.seconds, int64(d.nanoseconds)
	if sec < 0 {
		sec = -sec
	}
	if nsec < 0 {
		nsec = -nsec
	}
	if v := sec / secondsPerDay; v != 0 {
		b = strconv.AppendInt(b, v, 10)
		b = append(b, 'd')
	}
	if v := sec / secondsPerHour % hoursPerDay; v != 0 {
		b = strconv.AppendInt(b, v, 10)
		b = append(b, 'h')
	}
	if v := sec / secondsPerMinute % minutesPerHour; v != 0 {
		b = strconv.AppendInt(b, v, 10)
		b = append(b, 'm')
	}
	s := sec % secondsPerMinute
	if s != 0 || nsec != 0 || len(b) == 0 || b[len(b)-1] == '-' {
		b = strconv.AppendInt(b, s, 10)
		if nsec != 0 {
			// Print the fraction zero-padded to nine digits, then strip
			// trailing zeros.
			frac := strconv.AppendInt(nil, nsec+nanosPerSecond, 10)[1:]
			for frac[len(frac)-1] == '0' {
				frac = frac[:len(frac)-1]
			}
			b = append(b, '.')
			b = append(b, frac...)
		}
		b = append(b, 's')
	}
	return string(b)
}

// addInt64 adds two int64 values, reporting whether the sum overflowed.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (sum > a) != (b > 0) {
		return 0, false
	}
	return sum, true
}

// subInt64 subtracts two int64 values, reporting whether the difference
// overflowed.
func subInt64(a, b int64) (int64, bool) {
	diff := a - b
	if (diff < a) != (b > 0) {
		return 0, false
	}
	return diff, true
}
