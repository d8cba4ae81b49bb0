// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package iobench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/c2h5oh/datasize"
)

// Report column names.
const (
	ColumnOperation = "operation"
	ColumnStrategy  = "strategy"
	ColumnBlockSize = "blockSize"
	ColumnFileSize  = "fileSizeInBytes"
	ColumnDuration  = "durationInMs"
)

// maxDurationMs is the longest duration, in milliseconds, a time.Duration
// can hold.
const maxDurationMs = float64(math.MaxInt64 / int64(time.Millisecond))

var requiredColumns = []string{
	ColumnOperation,
	ColumnStrategy,
	ColumnBlockSize,
	ColumnDuration,
}

// ReadFile loads the report at path. See [ReadReport].
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadReport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadReport parses a comma-separated report. The first record is a header that
// must name at least the operation, strategy, blockSize and durationInMs
// columns; other columns are ignored. Block sizes are integral byte counts
// and durations are non-negative, possibly fractional, milliseconds.
//
// A row whose operation is neither read nor write fails the whole read with
// [ErrUnknownOperation] rather than being dropped.
func ReadReport(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	cols := make([]int, len(requiredColumns))
	for i, name := range requiredColumns {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[i] = col
	}
	opCol, stCol, bsCol, durCol := cols[0], cols[1], cols[2], cols[3]

	ds := NewDataset()
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		line, _ := cr.FieldPos(0)

		op, err := ParseOperation(record[opCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		st := ClassifyStrategy(record[stCol])

		m, err := parseMeasurement(record[bsCol], record[durCol])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		ds.add(op, st, m)
	}
	return ds, nil
}

func parseMeasurement(blockSize, duration string) (Measurement, error) {
	bs, err := strconv.ParseUint(blockSize, 10, 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("%s: %w", ColumnBlockSize, err)
	}
	ms, err := strconv.ParseFloat(duration, 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("%s: %w", ColumnDuration, err)
	}
	// Also rejects NaN, which fails every comparison.
	if !(ms >= 0 && ms <= maxDurationMs) {
		return Measurement{}, fmt.Errorf("%s: %q out of range [0, %g]", ColumnDuration, duration, maxDurationMs)
	}
	return Measurement{
		BlockSize: datasize.ByteSize(bs),
		Duration:  time.Duration(math.Round(ms * float64(time.Millisecond))),
	}, nil
}
