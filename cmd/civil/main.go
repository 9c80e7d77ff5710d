// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command civil is a calculator for civil dates and times. It parses
// ISO 8601 inputs, does calendar arithmetic on them and converts between
// UTC offsets, without ever consulting a timezone database.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gonih.org/civil"
)

var version = "0.1.0"

const dateTimeLayout = "2006-01-02T15:04:05.999999999"

func main() {
	rootCmd := &cobra.Command{
		Use:   "civil",
		Short: "Civil calendar calculator",
		Long: `Civil does arithmetic on dates and wall-clock times of the proleptic
Gregorian calendar, covering the years -9999 through 9999.

Values are parsed and printed as ISO 8601, for example 2006-01-02 or
2006-01-02T15:04:05.5. No timezone database is consulted; offsets are
plain displacements from UTC.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(convertCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <datetime>",
		Short: "Show calendar facts about a date or datetime",
		Long: `Show calendar facts about a date or datetime.

Example:
  civil info 2019-01-01
  civil info 2020-12-31T13:37:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseArg(args[0])
			if err != nil {
				return err
			}
			d := dt.Date()
			isoYear, isoWeek := d.ISOWeek()
			fmt.Printf("date:        %s\n", d)
			fmt.Printf("time:        %s\n", dt.Time())
			fmt.Printf("weekday:     %s\n", d.Weekday())
			fmt.Printf("ordinal day: %d of %d\n", d.Ordinal(), d.Year())
			fmt.Printf("iso week:    %d of %d\n", isoWeek, isoYear)
			fmt.Printf("julian day:  %d\n", d.JulianDay())
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <datetime>",
		Short: "Add a span of time to a datetime",
		Long: `Add a span of time to a datetime. Years, months and days follow
calendar arithmetic; --by takes a Go duration string and follows the
clock.

Example:
  civil add 2019-01-01 --days 45
  civil add 2019-01-01T00:00:00 --by 27h
  civil add 2019-01-31 --months 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseArg(args[0])
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")
			months, _ := cmd.Flags().GetInt("months")
			days, _ := cmd.Flags().GetInt("days")
			by, _ := cmd.Flags().GetString("by")

			if years != 0 || months != 0 || days != 0 {
				dt = dt.ReplaceDate(dt.Date().AddDate(years, months, days))
			}
			if by != "" {
				d, err := time.ParseDuration(by)
				if err != nil {
					return err
				}
				dt = dt.AddDuration(d)
			}
			fmt.Println(dt)
			return nil
		},
	}
	cmd.Flags().Int("years", 0, "years to add")
	cmd.Flags().Int("months", 0, "months to add")
	cmd.Flags().Int("days", 0, "days to add")
	cmd.Flags().String("by", "", "Go duration to add, e.g. 27h30m")
	return cmd
}

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <datetime> <datetime>",
		Short: "Show the span of time between two datetimes",
		Long: `Show the span of time between two datetimes, as first minus second.

Example:
  civil diff 2019-01-02T03:00:00 2019-01-01T00:00:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseArg(args[0])
			if err != nil {
				return err
			}
			b, err := parseArg(args[1])
			if err != nil {
				return err
			}
			fmt.Println(a.SubDateTime(b))
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <datetime>",
		Short: "Convert a datetime between UTC offsets",
		Long: `Convert a wall-clock reading between UTC offsets. The input is
interpreted at --from and printed as read off a clock at --to.

Example:
  civil convert 2020-01-01T00:30:00 --from +01:00
  civil convert 2019-12-31T23:30:00 --to -05:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseArg(args[0])
			if err != nil {
				return err
			}
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")

			from, err := parseOffset(fromStr)
			if err != nil {
				return err
			}
			to, err := parseOffset(toStr)
			if err != nil {
				return err
			}
			fmt.Println(dt.OffsetToUTC(from).UTCToOffset(to))
			return nil
		},
	}
	cmd.Flags().String("from", "+00:00", "offset the input is read at, e.g. +01:00")
	cmd.Flags().String("to", "+00:00", "offset to print the result at, e.g. -05:30")
	return cmd
}

// parseArg parses an ISO 8601 datetime, falling back to a bare date at
// midnight.
func parseArg(s string) (civil.DateTime, error) {
	if dt, err := civil.ParseDateTime(dateTimeLayout, s); err == nil {
		return dt, nil
	}
	d, err := civil.ParseDate(civil.DateOnly, s)
	if err != nil {
		return civil.DateTime{}, err
	}
	return d.Midnight(), nil
}

// parseOffset parses a UTC offset of the form ±hh, ±hh:mm or ±hh:mm:ss.
func parseOffset(s string) (civil.Offset, error) {
	orig := s
	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return civil.Offset{}, fmt.Errorf("invalid offset %q", orig)
	}
	var hms [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return civil.Offset{}, fmt.Errorf("invalid offset %q", orig)
		}
		hms[i] = sign * v
	}
	o, err := civil.NewOffset(hms[0], hms[1], hms[2])
	if err != nil {
		return civil.Offset{}, fmt.Errorf("invalid offset %q: %w", orig, err)
	}
	return o, nil
}
