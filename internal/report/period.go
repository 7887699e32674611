package report

import (
	"fmt"
	"strconv"

	"billig/internal/core"
	"billig/internal/diag"
)

// ParsePeriod reads the bounds of a report, given as partial dates such as
// "2021", "2021-Mar" or "Jun-15". Missing years come from ref. An empty
// from stands for the year of ref and an empty to repeats from, so that
// ParsePeriod("2021-Mar", "", ref) is the whole of March.
func ParsePeriod(from, to string, ref core.Date) (core.Period, error) {
	if from == "" {
		from = strconv.Itoa(ref.Year())
	}
	if to == "" {
		to = from
	}
	pi, err := core.ParsePartialInterval(from + ".." + to)
	if err != nil {
		return core.Period{}, err
	}
	if pi.Kind != core.KindBetween {
		return core.Period{}, fmt.Errorf("%w: %s is not bounded", core.ErrInvalidPeriod, pi)
	}
	rec := diag.NewRecord()
	iv, ok := pi.Make(rec, diag.Loc{}, &ref)
	if !ok {
		msg := "cannot be resolved"
		if errs := rec.Errors(); len(errs) > 0 {
			msg = errs[0].String()
		}
		return core.Period{}, fmt.Errorf("%w: %s: %s", core.ErrInvalidPeriod, pi, msg)
	}
	return iv.AsBetween(), nil
}
