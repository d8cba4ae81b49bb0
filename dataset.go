// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package iobench

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"golang.org/x/text/cases"
)

// Operation is the benchmarked action.
type Operation int

const (
	Read Operation = iota
	Write
	operationCount
)

var operationNames = [operationCount]string{"read", "write"}

// Operations returns every Operation in enumeration order.
func Operations() []Operation {
	return []Operation{Read, Write}
}

func (o Operation) String() string {
	if o < 0 || o >= operationCount {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

// ParseOperation maps a report's operation field onto an Operation,
// ignoring case.
func ParseOperation(s string) (Operation, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	for op, name := range operationNames {
		if folded == name {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOperation, s)
}

// Strategy is the I/O access strategy being compared.
type Strategy int

const (
	Buffered Strategy = iota
	Unbuffered
	strategyCount
)

var strategyNames = [strategyCount]string{"buffered", "unbuffered"}

// UnbufferedMarker is the substring that identifies an unbuffered strategy
// in a report's strategy field.
const UnbufferedMarker = "Without"

// Strategies returns every Strategy in enumeration order.
func Strategies() []Strategy {
	return []Strategy{Buffered, Unbuffered}
}

func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ClassifyStrategy maps a report's strategy field onto a Strategy. Any value
// that does not carry [UnbufferedMarker] is Buffered.
func ClassifyStrategy(s string) Strategy {
	if strings.Contains(s, UnbufferedMarker) {
		return Unbuffered
	}
	return Buffered
}

// Measurement is a single benchmark run.
type Measurement struct {
	BlockSize datasize.ByteSize
	Duration  time.Duration
}

// Milliseconds returns the duration as fractional milliseconds.
func (m Measurement) Milliseconds() float64 {
	return float64(m.Duration) / float64(time.Millisecond)
}

// Series is an ordered sequence of measurements.
type Series []Measurement

// Below returns the measurements whose block size is strictly less than
// limit, in their original order.
func (s Series) Below(limit datasize.ByteSize) Series {
	out := make(Series, 0, len(s))
	for _, m := range s {
		if m.BlockSize < limit {
			out = append(out, m)
		}
	}
	return out
}

// Bucket is one cell of a Dataset.
type Bucket struct {
	Operation Operation
	Strategy  Strategy
	Series    Series
}

// Label returns the bucket's legend caption, e.g. "unbuffered read".
func (b Bucket) Label() string {
	return b.Strategy.String() + " " + b.Operation.String()
}

// Dataset groups measurements by operation and strategy. All four buckets
// exist from construction on, whether or not they receive measurements.
type Dataset struct {
	series [operationCount][strategyCount]Series
}

// NewDataset returns a Dataset with four empty buckets.
func NewDataset() *Dataset {
	d := &Dataset{}
	for op := range d.series {
		for st := range d.series[op] {
			d.series[op][st] = Series{}
		}
	}
	return d
}

func (d *Dataset) add(op Operation, st Strategy, m Measurement) {
	d.series[op][st] = append(d.series[op][st], m)
}

// Series returns a copy of the measurements recorded for op and st.
func (d *Dataset) Series(op Operation, st Strategy) Series {
	return slices.Clone(d.series[op][st])
}

// Buckets returns the four buckets in a fixed order: read before write and,
// within each, buffered before unbuffered.
func (d *Dataset) Buckets() []Bucket {
	buckets := make([]Bucket, 0, int(operationCount)*int(strategyCount))
	for _, op := range Operations() {
		for _, st := range Strategies() {
			buckets = append(buckets, Bucket{
				Operation: op,
				Strategy:  st,
				Series:    d.Series(op, st),
			})
		}
	}
	return buckets
}

// Len returns the total number of measurements across all buckets.
func (d *Dataset) Len() int {
	n := 0
	for op := range d.series {
		for st := range d.series[op] {
			n += len(d.series[op][st])
		}
	}
	return n
}
