package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hoaproject/Bench/pkg/bench"
)

func TestAtomicFilters(t *testing.T) {
	tests := []struct {
		name    string
		filter  bench.Filter
		id      string
		elapsed time.Duration
		percent float64
		want    bool
	}{
		{"min percent above", MinPercent{Value: 30}, "a", 0, 50, true},
		{"min percent equal", MinPercent{Value: 30}, "a", 0, 30, true},
		{"min percent below", MinPercent{Value: 30}, "a", 0, 25, false},
		{"max percent below", MaxPercent{Value: 30}, "a", 0, 25, true},
		{"max percent above", MaxPercent{Value: 30}, "a", 0, 50, false},
		{"min elapsed above", MinElapsed{Value: time.Second}, "a", 2 * time.Second, 0, true},
		{"min elapsed below", MinElapsed{Value: time.Second}, "a", time.Millisecond, 0, false},
		{"max elapsed below", MaxElapsed{Value: time.Second}, "a", time.Millisecond, 0, true},
		{"max elapsed above", MaxElapsed{Value: time.Second}, "a", 2 * time.Second, 0, false},
		{"match glob", Match{Pattern: "db.*"}, "db.query", 0, 0, true},
		{"match miss", Match{Pattern: "db.*"}, "http.get", 0, 0, false},
		{"match bad pattern", Match{Pattern: "["}, "[", 0, 0, false},
		{"not", Not{Filter: Match{Pattern: "__*"}}, "__global__", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Evaluate(tt.id, tt.elapsed, tt.percent))
		})
	}
}

func TestCompositeFilters(t *testing.T) {
	big := MinPercent{Value: 50}
	db := Match{Pattern: "db*"}

	all := All{Filters: []bench.Filter{big, db}}
	assert.True(t, all.Evaluate("db", 0, 60))
	assert.False(t, all.Evaluate("db", 0, 10))
	assert.False(t, all.Evaluate("http", 0, 60))

	anyOf := Any{Filters: []bench.Filter{big, db}}
	assert.True(t, anyOf.Evaluate("http", 0, 60))
	assert.True(t, anyOf.Evaluate("db", 0, 10))
	assert.False(t, anyOf.Evaluate("http", 0, 10))

	assert.True(t, All{}.Evaluate("x", 0, 0))
	assert.False(t, Any{}.Evaluate("x", 0, 0))
}

func TestDescribe(t *testing.T) {
	f := All{Filters: []bench.Filter{
		MinPercent{Value: 10},
		Not{Filter: Match{Pattern: "__*"}},
		bench.FilterFunc(func(string, time.Duration, float64) bool { return true }),
	}}

	assert.Equal(t, `all(percent >= 10, not(id matches "__*"), bench.FilterFunc)`, describe(f))
	assert.Equal(t, "any(elapsed <= 1s)", describe(Any{Filters: []bench.Filter{MaxElapsed{Value: time.Second}}}))
}

func TestFilters_WithStatistics(t *testing.T) {
	r := bench.NewRegistry()
	r.Get("db.query")
	r.Get("http.get")

	stats := bench.NewStatistics(r, Not{Filter: Match{Pattern: bench.GlobalID}}, Match{Pattern: "db.*"})
	assert.Equal(t, []string{"db.query"}, stats.Snapshot(true).IDs())
}
