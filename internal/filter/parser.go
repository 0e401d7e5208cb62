package filter

import (
	"fmt"
	"path"

	"github.com/hoaproject/Bench/internal/config"
	"github.com/hoaproject/Bench/pkg/bench"
)

// Parse converts a filter spec into a bench.Filter
func Parse(spec *config.FilterSpec) (bench.Filter, error) {
	if spec == nil {
		return nil, fmt.Errorf("filter is nil")
	}

	atomic, err := collectAtomic(spec)
	if err != nil {
		return nil, err
	}
	composites := countComposites(spec)

	if len(atomic) == 0 && composites == 0 {
		return nil, fmt.Errorf("filter must specify at least one condition")
	}
	if len(atomic) > 0 && composites > 0 {
		return nil, fmt.Errorf("cannot mix atomic filters (min_percent, max_percent, min_elapsed, max_elapsed, match, exclude) with composite filters (all, any, not) at the same level")
	}
	if composites > 1 {
		return nil, fmt.Errorf("only one of 'all', 'any' and 'not' can be used at the same level")
	}

	switch {
	case len(spec.All) > 0:
		filters, err := parseList("all", spec.All)
		if err != nil {
			return nil, err
		}
		return All{Filters: filters}, nil
	case len(spec.Any) > 0:
		filters, err := parseList("any", spec.Any)
		if err != nil {
			return nil, err
		}
		return Any{Filters: filters}, nil
	case spec.Not != nil:
		inner, err := Parse(spec.Not)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return Not{Filter: inner}, nil
	}

	// Several atomic conditions at one level are combined with AND
	if len(atomic) > 1 {
		return All{Filters: atomic}, nil
	}
	return atomic[0], nil
}

// ParseAll parses every spec of a configuration, in order
func ParseAll(specs []config.FilterSpec) ([]bench.Filter, error) {
	filters := make([]bench.Filter, 0, len(specs))
	for i := range specs {
		f, err := Parse(&specs[i])
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func collectAtomic(spec *config.FilterSpec) ([]bench.Filter, error) {
	var filters []bench.Filter

	if spec.MinPercent != nil {
		filters = append(filters, MinPercent{Value: *spec.MinPercent})
	}
	if spec.MaxPercent != nil {
		filters = append(filters, MaxPercent{Value: *spec.MaxPercent})
	}
	if spec.MinElapsed > 0 {
		filters = append(filters, MinElapsed{Value: spec.MinElapsed})
	}
	if spec.MaxElapsed > 0 {
		filters = append(filters, MaxElapsed{Value: spec.MaxElapsed})
	}
	if spec.Match != "" {
		if _, err := path.Match(spec.Match, ""); err != nil {
			return nil, fmt.Errorf("match: invalid pattern %q: %w", spec.Match, err)
		}
		filters = append(filters, Match{Pattern: spec.Match})
	}
	if spec.Exclude != "" {
		if _, err := path.Match(spec.Exclude, ""); err != nil {
			return nil, fmt.Errorf("exclude: invalid pattern %q: %w", spec.Exclude, err)
		}
		filters = append(filters, Not{Filter: Match{Pattern: spec.Exclude}})
	}

	return filters, nil
}

func countComposites(spec *config.FilterSpec) int {
	count := 0
	if len(spec.All) > 0 {
		count++
	}
	if len(spec.Any) > 0 {
		count++
	}
	if spec.Not != nil {
		count++
	}
	return count
}

func parseList(op string, specs []config.FilterSpec) ([]bench.Filter, error) {
	filters := make([]bench.Filter, 0, len(specs))
	for i := range specs {
		f, err := Parse(&specs[i])
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", op, i, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}
