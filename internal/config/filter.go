package config

import (
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/timeutil"
)

// FilterConfig selects loop records by their start time.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// FilterOptions are the raw filter flags.
type FilterOptions struct {
	Period string
	Start  string
	End    string
}

// Filter returns a configuration to filter loop records from command-line
// arguments.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	return newFilter(FilterOptions{
		Period: ctx.String("period"),
		Start:  ctx.String("start"),
		End:    ctx.String("end"),
	}, time.Now())
}

func newFilter(opts FilterOptions, now time.Time) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(opts.Period))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = timeutil.GetTimeRange(period, now)

		return filterCfg, nil
	}

	if opts.Start == "" {
		filterCfg.StartTime, filterCfg.EndTime = timeutil.GetTimeRange(
			timeutil.PeriodAllTime,
			now,
		)

		return filterCfg, nil
	}

	start, err := timeutil.FromStr(opts.Start, now)
	if err != nil {
		return nil, errInvalidStartDate.Wrap(err)
	}

	filterCfg.StartTime = start

	if now.After(filterCfg.StartTime) {
		filterCfg.EndTime = now
	} else {
		filterCfg.EndTime = timeutil.RoundToEnd(filterCfg.StartTime)
	}

	if opts.End != "" {
		end, err := timeutil.FromStr(opts.End, now)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = end
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}
