package dlist

import (
	"time"
	"unicode/utf8"
)

// Measure is the scalar type a Measurer produces for a value. The core
// engine only ever adds an aggregate to another aggregate, or subtracts a
// prefix aggregate from a containing one (never arbitrary measures from
// each other), so restricting Measure to Go's built-in numeric type set
// is sufficient for every aggregate Node actually computes and keeps the
// arithmetic expressible with plain +/- operators instead of a method-based
// abelian-group interface.
type Measure interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Measurer associates a value of type V with its weight in the measure
// space M. Measure must be a pure function of the value: it is called
// again on a value each time its node's aggregates are refreshed or a
// search passes through it, so instability here silently corrupts every
// cached length aggregate above that value.
type Measurer[V any, M Measure] interface {
	// Nil returns the additive identity of M.
	Nil() M
	// Measure returns the weight of value.
	Measure(value V) M
}

// FuncMeasurer adapts two plain functions into a Measurer, the way
// http.HandlerFunc adapts a function into a Handler. Useful for ad hoc
// measurers that don't warrant a named type.
type FuncMeasurer[V any, M Measure] struct {
	NilFunc     func() M
	MeasureFunc func(V) M
}

func (f FuncMeasurer[V, M]) Nil() M          { return f.NilFunc() }
func (f FuncMeasurer[V, M]) Measure(v V) M   { return f.MeasureFunc(v) }

// CountMeasurer weighs every value as 1, turning distance queries into
// plain index queries. Useful as a default when no natural measure exists.
type CountMeasurer[V any] struct{}

func (CountMeasurer[V]) Nil() int        { return 0 }
func (CountMeasurer[V]) Measure(V) int   { return 1 }

// ByteLengthMeasurer weighs a string by its byte length, the measure used
// by original_source/benches/dlist_bench.rs for its Rc<String> benchmark.
type ByteLengthMeasurer struct{}

func (ByteLengthMeasurer) Nil() int                { return 0 }
func (ByteLengthMeasurer) Measure(v string) int    { return len(v) }

// RuneLengthMeasurer weighs a string by its rune count rather than its
// byte length; useful when distances should track user-perceived
// character offsets over UTF-8 text.
type RuneLengthMeasurer struct{}

func (RuneLengthMeasurer) Nil() int              { return 0 }
func (RuneLengthMeasurer) Measure(v string) int  { return utf8.RuneCountInString(v) }

// DurationMeasurer weighs a value by a caller-supplied duration extractor,
// for sequences addressed by elapsed time (e.g. a timeline of events).
type DurationMeasurer[V any] struct {
	Extract func(V) time.Duration
}

func (d DurationMeasurer[V]) Nil() time.Duration { return 0 }
func (d DurationMeasurer[V]) Measure(v V) time.Duration {
	return d.Extract(v)
}
