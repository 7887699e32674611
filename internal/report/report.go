// Package report aggregates entries into calendars and prints them.
package report

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"billig/internal/core"
	"billig/internal/log"
)

// Table is one calendar of a report: the buckets of a single duration.
type Table struct {
	Duration core.Duration
	Calendar *core.Calendar
}

// Title reads like "Monthly summary of 2021".
func (t Table) Title(period core.Period) string {
	return fmt.Sprintf("%s summary of %s", t.Duration.TextFrequency(), core.FormatPeriod(period))
}

// Totals adds up every bucket of the table.
func (t Table) Totals() core.Summary {
	var out core.Summary
	items := t.Calendar.Contents()
	if len(items) == 0 {
		return out
	}
	out.Period = core.NewPeriod(items[0].Period.Lo, items[len(items)-1].Period.Hi)
	for _, s := range items {
		out.Total += s.Total
		for i, v := range s.Categories {
			out.Categories[i] += v
		}
	}
	return out
}

// Report holds one table per requested duration, in request order.
type Report struct {
	Period core.Period
	Tables []Table
}

// Build registers entries into one calendar per duration over the
// inclusive period. Calendars are filled concurrently; entries are only
// read.
func Build(ctx context.Context, entries []core.Entry, period core.Period, durations []core.Duration) (*Report, error) {
	if period.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidPeriod, core.FormatPeriod(period))
	}
	rep := &Report{Period: period, Tables: make([]Table, len(durations))}
	bounds := core.NewPeriod(period.Lo, period.Hi.Next())
	logger := log.FromContext(ctx).WithComponent(log.ComponentReport)

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range durations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cal := core.CalendarFromSpacing(bounds, d, 1)
			cal.Register(entries...)
			rep.Tables[i] = Table{Duration: d, Calendar: cal}
			logger.DebugContext(gctx, "Calendar filled",
				log.FieldStep, d.String(),
				log.FieldBuckets, cal.Len(),
				log.FieldEntries, len(entries))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return rep, nil
}

// ParseDurations reads a comma separated list such as "week,month,Year".
func ParseDurations(s string) ([]core.Duration, error) {
	var out []core.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := core.ParseDuration(strings.ToUpper(part[:1]) + strings.ToLower(part[1:]))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no duration in %q", core.ErrUnknownDuration, s)
	}
	return out, nil
}
