// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gonih.org/civil/internal/cache"
)

// These are predefined layouts for use in the Format and Parse functions of
// [Date], [Time] and [DateTime]. The reference moment used in these layouts
// is the specific wall-clock reading:
//
//	January 2, 2006, 15:04:05
//
// That value is recorded as the constant named [Layout], listed below. The
// moment is chosen for compatibility with package [time].
//
// The format specification works the same as [time.Layout], except that
// format specifiers related to timezones are treated as literals and
// otherwise ignored. Specifically, the recognized components are
//
//	Year: "2006" "06"
//	Month: "Jan" "January" "01" "1"
//	Day of the week: "Mon" "Monday"
//	Day of the month: "2" "_2" "02"
//	Day of the year: "__2" "002"
//	Hour: "15"
//	Minute: "4" "04"
//	Second: "5" "05"
//	Fractional second: ".0" ",0" ".9" ",9" and runs thereof
//
// A fractional second of "0"s prints and requires exactly that many digits,
// while one of "9"s trims trailing zeros and is omitted entirely when the
// sub-second part is zero.
const (
	Layout   = "01/02 '06 15:04:05" // The reference moment, in numerical order
	RFC3339  = "2006-01-02T15:04:05"
	DateOnly = "2006-01-02"
	TimeOnly = "15:04:05"

	timeWithFraction     = "15:04:05.999999999"
	dateTimeWithFraction = "2006-01-02T15:04:05.999999999"
)

var longDayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var shortDayNames = []string{
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
}

var shortMonthNames = []string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Jun",
	"Jul",
	"Aug",
	"Sep",
	"Oct",
	"Nov",
	"Dec",
}

var longMonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// inst is a single component of a layout string, either a literal string, or
// a formatting operator. For the fractional second operators, lit holds the
// separator and n the number of digits in the layout.
type inst struct {
	op  fmtOp
	lit string
	n   int
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	switch i.op {
	case opLiteral:
		return i.lit
	case opFracSecond0:
		return i.lit + strings.Repeat("0", i.n)
	case opFracSecond9:
		return i.lit + strings.Repeat("9", i.n)
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	// Sorted by parsing preference, do not re-order!
	opLongMonth
	opMonth
	opLongWeekDay
	opWeekDay
	opZeroYearDay
	opZeroMonth
	opZeroDay
	opZeroMinute
	opZeroSecond
	opYear
	opHour
	opNumMonth
	opLongYear
	opDay
	opMinute
	opSecond
	opUnderLongYear // package time treats this as "_"+opLongYear, but it is simpler to just handle it with an extra opcode
	opUnderDay
	opUnderYearDay

	opInvalid

	// Matched structurally in nextOp rather than via the table above, as
	// their layout representation has a variable number of digits.
	opFracSecond0
	opFracSecond9
)

// String implements fmt.Stringer. Except for opLiteral and the fractional
// second operators, it returns the layout component of the operator.
func (op fmtOp) String() string {
	switch op {
	case opLiteral:
		return "<literal>"
	case opLongMonth:
		return "January"
	case opMonth:
		return "Jan"
	case opLongWeekDay:
		return "Monday"
	case opWeekDay:
		return "Mon"
	case opZeroYearDay:
		return "002"
	case opZeroMonth:
		return "01"
	case opZeroDay:
		return "02"
	case opZeroMinute:
		return "04"
	case opZeroSecond:
		return "05"
	case opYear:
		return "06"
	case opHour:
		return "15"
	case opNumMonth:
		return "1"
	case opLongYear:
		return "2006"
	case opDay:
		return "2"
	case opMinute:
		return "4"
	case opSecond:
		return "5"
	case opUnderLongYear:
		return "_2006"
	case opUnderDay:
		return "_2"
	case opUnderYearDay:
		return "__2"
	}
	panic("invalid fmtOp")
}

// endsWord returns whether op must be a full word, that is must not be
// followed by a lower-case letter.
func (op fmtOp) endsWord() bool {
	return op == opMonth || op == opWeekDay
}

// memoize compiled layout strings.
var memo cache.Cache[string, []inst]

// parseLayout parses layout into a set of instructions to parse or format
// according to it.
func parseLayout(layout string) []inst {
	var prog []inst
	for len(layout) > 0 {
		prefix, in, suffix := nextOp(layout)
		if prefix != "" {
			prog = append(prog, inst{lit: prefix})
		}
		if in.op != opLiteral {
			prog = append(prog, in)
		}
		layout = suffix
	}
	return prog
}

// nextOp decomposes layout into the next operator, a literal prefix and the
// rest of the layout.
func nextOp(layout string) (prefix string, in inst, suffix string) {
	for i := 0; i < len(layout); i++ {
		if c := layout[i]; (c == '.' || c == ',') && i+1 < len(layout) && (layout[i+1] == '0' || layout[i+1] == '9') {
			digit := layout[i+1]
			j := i + 1
			for j < len(layout) && layout[j] == digit {
				j++
			}
			op := opFracSecond0
			if digit == '9' {
				op = opFracSecond9
			}
			return layout[:i], inst{op: op, lit: layout[i : i+1], n: j - i - 1}, layout[j:]
		}
		for op := opLongMonth; op < opInvalid; op++ {
			suffix, ok := strings.CutPrefix(layout[i:], op.String())
			if !ok {
				continue
			}
			if op.endsWord() && startsWithLowerCase(suffix) {
				continue
			}
			return layout[:i], inst{op: op}, suffix
		}
	}
	return layout, inst{}, ""
}

// startsWithLowerCase reports whether the string has a lower-case letter at
// the beginning. Its purpose is to prevent matching strings like "Month" when
// looking for "Mon".
func startsWithLowerCase(s string) bool {
	return len(s) > 0 && 'a' <= s[0] && s[0] <= 'z'
}

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See the documentation for
// the constant called Layout to see how to represent the layout format.
// Clock components print as zero.
func (d Date) Format(layout string) string {
	return format(layout, d, Time{})
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (d Date) AppendFormat(b []byte, layout string) []byte {
	return appendLayout(b, layout, d, Time{})
}

// Format returns a textual representation of the time value formatted
// according to the layout defined by the argument. See the documentation for
// the constant called Layout to see how to represent the layout format.
// Calendar components print as those of the zero Date.
func (t Time) Format(layout string) string {
	return format(layout, Date{}, t)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (t Time) AppendFormat(b []byte, layout string) []byte {
	return appendLayout(b, layout, Date{}, t)
}

// Format returns a textual representation of the value formatted according
// to the layout defined by the argument. See the documentation for the
// constant called Layout to see how to represent the layout format.
func (p DateTime) Format(layout string) string {
	return format(layout, p.date, p.time)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (p DateTime) AppendFormat(b []byte, layout string) []byte {
	return appendLayout(b, layout, p.date, p.time)
}

func format(layout string, d Date, t Time) string {
	const bufSize = 64
	var b []byte
	max := len(layout) + 10
	if max < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, max)
	}
	return string(appendLayout(b, layout, d, t))
}

func appendLayout(b []byte, layout string, d Date, t Time) []byte {
	year, month, day := d.Date()
	yday := d.Ordinal()

	prog := memo.Get(layout, parseLayout)

	for _, i := range prog {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opYear:
			y := int64(year) % 100
			if y < 0 {
				y = -y
			}
			if y < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, y, 10)
		case opUnderLongYear:
			b = append(b, '_')
			fallthrough
		case opLongYear:
			y := year
			if y < 0 {
				b = append(b, '-')
				y = -y
			}
			if y < 1000 {
				b = append(b, '0')
			}
			if y < 100 {
				b = append(b, '0')
			}
			if y < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(y), 10)
		case opMonth:
			b = append(b, month.String()[:3]...)
		case opLongMonth:
			b = append(b, month.String()...)
		case opNumMonth:
			b = strconv.AppendInt(b, int64(month), 10)
		case opZeroMonth:
			if month < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(month), 10)
		case opWeekDay:
			b = append(b, d.Weekday().String()[:3]...)
		case opLongWeekDay:
			b = append(b, d.Weekday().String()...)
		case opDay:
			b = strconv.AppendInt(b, int64(day), 10)
		case opUnderDay:
			if day < 10 {
				b = append(b, ' ')
			}
			b = strconv.AppendInt(b, int64(day), 10)
		case opZeroDay:
			if day < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(day), 10)
		case opUnderYearDay:
			if yday < 100 {
				b = append(b, ' ')
				if yday < 10 {
					b = append(b, ' ')
				}
			}
			b = strconv.AppendInt(b, int64(yday), 10)
		case opZeroYearDay:
			if yday < 100 {
				b = append(b, '0')
				if yday < 10 {
					b = append(b, '0')
				}
			}
			b = strconv.AppendInt(b, int64(yday), 10)
		case opHour:
			if t.Hour() < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(t.Hour()), 10)
		case opMinute:
			b = strconv.AppendInt(b, int64(t.Minute()), 10)
		case opZeroMinute:
			if t.Minute() < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(t.Minute()), 10)
		case opSecond:
			b = strconv.AppendInt(b, int64(t.Second()), 10)
		case opZeroSecond:
			if t.Second() < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(t.Second()), 10)
		case opFracSecond0:
			b = appendFraction(b, t.Nanosecond(), i.n, i.lit[0], false)
		case opFracSecond9:
			b = appendFraction(b, t.Nanosecond(), i.n, i.lit[0], true)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
	}
	return b
}

// appendFraction appends a fractional second with n digits. If trim is set,
// trailing zeros are removed and a zero fraction is omitted entirely.
func appendFraction(b []byte, nanosecond, n int, sep byte, trim bool) []byte {
	u := nanosecond
	var buf [9]byte
	for start := len(buf); start > 0; {
		start--
		buf[start] = byte(u%10 + '0')
		u /= 10
	}
	if n > 9 {
		n = 9
	}
	if trim {
		for n > 0 && buf[n-1] == '0' {
			n--
		}
		if n == 0 {
			return b
		}
	}
	b = append(b, sep)
	return append(b, buf[:n]...)
}

// parsed holds the components extracted from an input string. A negative
// component was not present in the layout.
type parsed struct {
	year       int
	month      int
	day        int
	yday       int
	hour       int
	minute     int
	second     int
	nanosecond int
}

// ParseDate parses a formatted string and returns the date value it
// represents. See the documentation for the constant called Layout to see
// how to represent the format. The second argument must be parseable using
// the format string (layout) provided as the first argument.
//
// Elements omitted from the layout are assumed to be zero or, when zero is
// impossible, one. Years must be in the range 0000…9999. The day of the week
// and all clock components are checked for syntax but otherwise ignored.
//
// For layouts specifying the two-digit year 06, a value NN >= 69 will be
// treated as 19NN and a value NN < 69 will be treated as 20NN.
func ParseDate(layout, value string) (Date, error) {
	p := newParser(value)
	v, err := p.components(layout, value)
	if err != nil {
		return Date{}, err
	}
	return resolveDate(p, layout, value, v)
}

// ParseTime parses a formatted string and returns the time value it
// represents. See the documentation for the constant called Layout to see
// how to represent the format.
//
// Elements omitted from the layout are assumed to be zero. Calendar
// components are checked for syntax but otherwise ignored.
func ParseTime(layout, value string) (Time, error) {
	p := newParser(value)
	v, err := p.components(layout, value)
	if err != nil {
		return Time{}, err
	}
	return Time{uint8(v.hour), uint8(v.minute), uint8(v.second), uint32(v.nanosecond)}, nil
}

// ParseDateTime parses a formatted string and returns the combined date and
// time value it represents. See the documentation for the constant called
// Layout to see how to represent the format.
//
// Elements omitted from the layout are assumed to be zero or, when zero is
// impossible, one. Years must be in the range 0000…9999. The day of the week
// is checked for syntax but otherwise ignored.
func ParseDateTime(layout, value string) (DateTime, error) {
	p := newParser(value)
	v, err := p.components(layout, value)
	if err != nil {
		return DateTime{}, err
	}
	d, err := resolveDate(p, layout, value, v)
	if err != nil {
		return DateTime{}, err
	}
	t := Time{uint8(v.hour), uint8(v.minute), uint8(v.second), uint32(v.nanosecond)}
	return DateTime{d, t}, nil
}

// components executes the parsing instructions of layout against the input.
// Clock components are range-checked here; reconciling the calendar
// components is left to resolveDate.
func (p *parser) components(layout, value string) (parsed, error) {
	v := parsed{month: -1, day: -1, yday: -1}

	prog := memo.Get(layout, parseLayout)

	for _, i := range prog {
		p.setInst(i)
		switch i.op {
		case opLiteral:
			p.accept(i.lit)
		case opYear:
			v.year = p.atoi(2)
			if v.year >= 69 { // Unix time starts Dec 31 1969 in some time zones
				v.year += 1900
			} else {
				v.year += 2000
			}
		case opUnderLongYear:
			p.accept("_")
			fallthrough
		case opLongYear:
			p.peekDigit()
			v.year = p.atoi(4)
		case opMonth:
			v.month = p.lookup(shortMonthNames) + 1
		case opLongMonth:
			v.month = p.lookup(longMonthNames) + 1
		case opNumMonth, opZeroMonth:
			v.month = p.num(i.op == opZeroMonth)
			if v.month <= 0 || 12 < v.month {
				p.invalidValue("month out of range")
			}
		case opWeekDay:
			// ignore weekday, except for parsing
			p.lookup(shortDayNames)
		case opLongWeekDay:
			// ignore weekday, except for parsing
			p.lookup(longDayNames)
		case opUnderDay:
			p.skipByte(' ')
			fallthrough
		case opDay, opZeroDay:
			v.day = p.num(i.op == opZeroDay)
		case opUnderYearDay:
			p.skipByte(' ')
			p.skipByte(' ')
			fallthrough
		case opZeroYearDay:
			v.yday = p.num3(i.op == opZeroYearDay)
		case opHour:
			v.hour = p.num(false)
			if v.hour < 0 || 23 < v.hour {
				p.invalidValue("hour out of range")
			}
		case opMinute, opZeroMinute:
			v.minute = p.num(i.op == opZeroMinute)
			if v.minute < 0 || 59 < v.minute {
				p.invalidValue("minute out of range")
			}
		case opSecond, opZeroSecond:
			v.second = p.num(i.op == opZeroSecond)
			if v.second < 0 || 59 < v.second {
				p.invalidValue("second out of range")
			}
		case opFracSecond0:
			v.nanosecond = p.fraction(i.n, true)
		case opFracSecond9:
			v.nanosecond = p.fraction(i.n, false)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		if p.hasErr {
			return parsed{}, p.err(layout, value, p.errMsg)
		}
	}
	if len(p.value) > 0 {
		return parsed{}, p.err(layout, value, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()
	return v, nil
}

// resolveDate reconciles the calendar components of v into a Date.
func resolveDate(p *parser, layout, value string, v parsed) (Date, error) {
	year, month, day, yday := v.year, v.month, v.day, v.yday
	if yday >= 0 {
		var (
			d int
			m int
		)
		if isLeap(year) {
			if yday == 31+29 {
				m = int(time.February)
				d = 29
			} else if yday > 31+29 {
				yday--
			}
		}
		if yday < 1 || yday > 365 {
			return Date{}, p.err(layout, value, "day-of-year out of range")
		}
		if m == 0 {
			m = (yday-1)/31 + 1
			if daysBefore[m] < yday {
				m++
			}
			d = yday - daysBefore[m-1]
		}
		// If month, day already seen, yday's m, d must match.
		// Otherwise, set them from m, d.
		if month >= 0 && month != m {
			return Date{}, p.err(layout, value, "day-of-year does not match month")
		}
		month = m
		if day >= 0 && day != d {
			return Date{}, p.err(layout, value, "day-of-year does not match day")
		}
		day = d
	} else {
		if month < 0 {
			month = int(time.January)
		}
		if day < 0 {
			day = 1
		}
	}
	// Validate the day of the month.
	if day < 1 || day > daysIn(time.Month(month), year) {
		return Date{}, p.err(layout, value, "day out of range")
	}
	return MustDate(year, time.Month(month), day), nil
}

// match reports whether s1 and s2 match ignoring case.
// It is assumed s1 and s2 are the same length.
func match(s1, s2 string) bool {
	for i := 0; i < len(s1); i++ {
		c1 := s1[i]
		c2 := s2[i]
		if c1 != c2 {
			// Switch to lower-case; 'a'-'A' is known to be a single bit.
			c1 |= 'a' - 'A'
			c2 |= 'a' - 'A'
			if c1 != c2 || c1 < 'a' || c1 > 'z' {
				return false
			}
		}
	}
	return true
}

func commaOrPeriod(b byte) bool {
	return b == '.' || b == ','
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst   inst
	hasErr bool
	value  string
	valEl  string
	errMsg string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = inst{op: opInvalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

// invalidValue signals that the parse succeeded, but the values where
// invalid (e.g. out of range). msg describes the validation failure.
func (p *parser) invalidValue(msg string) {
	p.hasErr = true
	p.errMsg = msg
}

func (p *parser) err(layout, value, msg string) error {
	// We call strings.Clone in this function to prevent the Parse functions
	// from allocating in the happy path. As parts of the input appear in the
	// error message, the compiler has to mark the value argument as
	// potentially escaping. Cloning them here means the input itself never
	// escapes. This means we save an allocation in the happy path, at the
	// cost of an extra allocation in the sad path.
	//
	// It would be great if we could have our cake and eat it to, but so far,
	// the compiler is not smart enough.
	v := strings.Clone(value)
	if msg == "" {
		ve := strings.Clone(p.valEl)
		le := strings.Clone(p.inst.String())
		return &ParseError{
			Layout:     layout,
			Value:      v,
			LayoutElem: le,
			ValueElem:  ve,
		}
	}
	return &ParseError{
		Layout:  layout,
		Value:   v,
		Message: msg,
	}
}

// skipByte skips the given byte, if the input starts with it.
func (p *parser) skipByte(b byte) {
	if len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// trimByte skips a run of the given byte.
func (p *parser) trimByte(b byte) {
	for len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if lit[0] == ' ' {
			if p.value != "" && p.value[0] != ' ' {
				p.parseFailed()
				return
			}
			p.trimByte(' ')
			lit = strings.TrimLeft(lit, " ")
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// atoi accepts the next i bytes of input as an integer.
func (p *parser) atoi(i int) int {
	if len(p.value) < i {
		p.parseFailed()
		return 0
	}
	v, err := strconv.Atoi(p.value[:i])
	if err != nil {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return v
}

// getnumN parses s[0:1], …, or s[0:N] (fixed forces s[0:N])
// as a decimal integer.
func (p *parser) getnumN(N int, fixed bool) int {
	var n, i int
	for i = 0; i < N && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || (fixed && i != N) {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// num parses s[:1] or s[:2] (fixed forces s[:2]) as a decimal integer.
func (p *parser) num(fixed bool) int {
	return p.getnumN(2, fixed)
}

// num parser s[:1], s[:2] or s[:3] (fixed forces s[:3]) as a decimal integer.
func (p *parser) num3(fixed bool) int {
	return p.getnumN(3, fixed)
}

// fraction parses a fractional second scaled to nanoseconds. Like package
// time, either separator is accepted on input. If fixed is set, exactly n
// digits must follow the separator. Otherwise any number of digits (up to
// nanosecond precision) is consumed, and an absent fraction is treated as
// zero.
func (p *parser) fraction(n int, fixed bool) int {
	if fixed {
		if len(p.value) < 1+n || !commaOrPeriod(p.value[0]) {
			p.parseFailed()
			return 0
		}
	} else {
		if len(p.value) < 2 || !commaOrPeriod(p.value[0]) || !isDigit(p.value, 1) {
			return 0
		}
		n = 0
		for isDigit(p.value, 1+n) {
			n++
		}
	}
	if n > 9 {
		p.invalidValue("fractional second out of range")
		return 0
	}
	ns := 0
	for i := 1; i <= n; i++ {
		if !isDigit(p.value, i) {
			p.parseFailed()
			return 0
		}
		ns = ns*10 + int(p.value[i]-'0')
	}
	for i := n; i < 9; i++ {
		ns *= 10
	}
	p.value = p.value[1+n:]
	return ns
}

// peekDigit ensures that the current value starts with a digit, without
// advancing the input.
func (p *parser) peekDigit() {
	if !isDigit(p.value, 0) {
		p.parseFailed()
	}
}

// lookup a value from a table and accept a case-insensitive match.
func (p *parser) lookup(table []string) int {
	for i, v := range table {
		if len(p.value) >= len(v) && match(p.value[0:len(v)], v) {
			p.value = p.value[len(v):]
			return i
		}
	}
	p.parseFailed()
	return 0
}

// ParseError describes a problem parsing an input string.
type ParseError struct {
	Layout     string
	Value      string
	LayoutElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing %q as %q: cannot parse %q as %q", e.Value, e.Layout, e.ValueElem, e.LayoutElem)
	}
	return fmt.Sprintf("parsing %q: %s", e.Value, e.Message)
}
