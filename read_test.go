// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package iobench_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/petenewcomb/iobench"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const header = "operation,strategy,blockSize,fileSizeInBytes,durationInMs\n"

func TestReadScenario(t *testing.T) {
	chk := require.New(t)

	ds, err := iobench.ReadReport(strings.NewReader(header +
		"read,Buffered,64,100,10\n" +
		"read,Without buffering,64,100,5\n"))
	chk.NoError(err)

	expected := map[iobench.Operation]map[iobench.Strategy]iobench.Series{
		iobench.Read: {
			iobench.Buffered:   {{BlockSize: 64, Duration: 10 * time.Millisecond}},
			iobench.Unbuffered: {{BlockSize: 64, Duration: 5 * time.Millisecond}},
		},
		iobench.Write: {
			iobench.Buffered:   {},
			iobench.Unbuffered: {},
		},
	}
	for op, byStrategy := range expected {
		for st, series := range byStrategy {
			chk.Empty(cmp.Diff(series, ds.Series(op, st)), "%v %v", st, op)
		}
	}
	chk.Equal(2, ds.Len())
}

func TestReadOriginalReportFormat(t *testing.T) {
	chk := require.New(t)

	ds, err := iobench.ReadReport(strings.NewReader(header +
		"WRITE,ByteByByteWithBufferedStream,0,104857600,1204\n" +
		"WRITE,BlockByBlockWithoutBufferedStream,512,104857600,310\n" +
		"READ,BlockByBlockWithBufferedStream,4096,104857600,22.5\n"))
	chk.NoError(err)

	chk.Equal(iobench.Series{{BlockSize: 0, Duration: 1204 * time.Millisecond}},
		ds.Series(iobench.Write, iobench.Buffered))
	chk.Equal(iobench.Series{{BlockSize: 512, Duration: 310 * time.Millisecond}},
		ds.Series(iobench.Write, iobench.Unbuffered))
	chk.Equal(iobench.Series{{BlockSize: 4 * datasize.KB, Duration: 22500 * time.Microsecond}},
		ds.Series(iobench.Read, iobench.Buffered))
	chk.Empty(ds.Series(iobench.Read, iobench.Unbuffered))
}

func TestReadHeaderOnly(t *testing.T) {
	chk := require.New(t)

	ds, err := iobench.ReadReport(strings.NewReader(header))
	chk.NoError(err)
	chk.Equal(0, ds.Len())
	chk.Len(ds.Buckets(), 4)
	for _, b := range ds.Buckets() {
		chk.Empty(b.Series)
	}
}

func TestReadColumnOrderAndExtras(t *testing.T) {
	chk := require.New(t)

	ds, err := iobench.ReadReport(strings.NewReader(
		"durationInMs,host,blockSize,strategy,operation\n" +
			"7,a,128,BlockByBlockWithoutBufferedStream,Write\n"))
	chk.NoError(err)
	chk.Equal(iobench.Series{{BlockSize: 128, Duration: 7 * time.Millisecond}},
		ds.Series(iobench.Write, iobench.Unbuffered))
}

func TestReadErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", iobench.ErrMissingColumn},
		{"missing duration", "operation,strategy,blockSize\nread,x,1\n", iobench.ErrMissingColumn},
		{"missing operation", "strategy,blockSize,durationInMs\n", iobench.ErrMissingColumn},
		{"unknown operation", header + "seek,Buffered,64,1,1\n", iobench.ErrUnknownOperation},
		{"block size not integer", header + "read,Buffered,6.4,1,1\n", iobench.ErrMalformedRow},
		{"negative block size", header + "read,Buffered,-1,1,1\n", iobench.ErrMalformedRow},
		{"duration not numeric", header + "read,Buffered,64,1,fast\n", iobench.ErrMalformedRow},
		{"short row", header + "read,Buffered,64\n", iobench.ErrMalformedRow},
		{"duration NaN", header + "read,Buffered,64,1,NaN\n", iobench.ErrMalformedRow},
		{"duration infinite", header + "read,Buffered,64,1,Inf\n", iobench.ErrMalformedRow},
		{"duration negative infinite", header + "read,Buffered,64,1,-Inf\n", iobench.ErrMalformedRow},
		{"duration overflows", header + "read,Buffered,64,1,1e13\n", iobench.ErrMalformedRow},
		{"duration negative", header + "read,Buffered,64,1,-5\n", iobench.ErrMalformedRow},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			ds, err := iobench.ReadReport(strings.NewReader(tc.input))
			chk.ErrorIs(err, tc.err)
			chk.Nil(ds)
		})
	}
}

func TestReadDurationBounds(t *testing.T) {
	chk := require.New(t)

	ds, err := iobench.ReadReport(strings.NewReader(header +
		"read,Buffered,1,1,0\n" +
		"read,Buffered,2,1,1000000000.5\n"))
	chk.NoError(err)
	chk.Equal(iobench.Series{
		{BlockSize: 1, Duration: 0},
		{BlockSize: 2, Duration: 1000000000*time.Millisecond + 500*time.Microsecond},
	}, ds.Series(iobench.Read, iobench.Buffered))

	_, err = iobench.ReadReport(strings.NewReader(header +
		"read,Buffered,1,1,0\n" +
		"read,Buffered,2,1,-0.001\n"))
	chk.ErrorIs(err, iobench.ErrMalformedRow)
	chk.ErrorContains(err, "line 3")
	chk.ErrorContains(err, iobench.ColumnDuration)
}

func TestReadUnknownOperationReportsLine(t *testing.T) {
	chk := require.New(t)
	_, err := iobench.ReadReport(strings.NewReader(header +
		"read,Buffered,64,1,1\n" +
		"append,Buffered,64,1,1\n"))
	chk.ErrorIs(err, iobench.ErrUnknownOperation)
	chk.ErrorContains(err, "line 3")
	chk.ErrorContains(err, `"append"`)
}

func TestReadFile(t *testing.T) {
	chk := require.New(t)

	path := filepath.Join(t.TempDir(), "metrics.csv")
	chk.NoError(os.WriteFile(path, []byte(header+"write,Buffered,2,1,3\n"), 0o644))

	ds, err := iobench.ReadFile(path)
	chk.NoError(err)
	chk.Equal(1, ds.Len())

	_, err = iobench.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	chk.True(errors.Is(err, fs.ErrNotExist))
}

func TestReadCommittedReport(t *testing.T) {
	chk := require.New(t)

	// go:generate renders the charts from this file.
	ds, err := iobench.ReadFile(filepath.Join("report", "metrics.csv"))
	chk.NoError(err)
	chk.Equal(92, ds.Len())
	for _, b := range ds.Buckets() {
		chk.Len(b.Series, 23, b.Label())
		chk.Equal(datasize.ByteSize(0), b.Series[0].BlockSize, b.Label())
	}
}

var operationSpellings = map[iobench.Operation][]string{
	iobench.Read:  {"read", "READ", "Read"},
	iobench.Write: {"write", "WRITE", "Write"},
}

var strategySpellings = map[iobench.Strategy][]string{
	iobench.Buffered:   {"Buffered", "ByteByByteWithBufferedStream", "BlockByBlockWithBufferedStream"},
	iobench.Unbuffered: {"Without buffering", "ByteByByteWithoutBufferedStream", "BlockByBlockWithoutBufferedStream"},
}

// TestReadRoundTrip checks that every row lands as exactly one measurement in
// exactly one bucket, in row order.
func TestReadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		type row struct {
			op iobench.Operation
			st iobench.Strategy
			m  iobench.Measurement
		}
		rows := rapid.SliceOf(rapid.Custom(func(t *rapid.T) row {
			return row{
				op: rapid.SampledFrom(iobench.Operations()).Draw(t, "op"),
				st: rapid.SampledFrom(iobench.Strategies()).Draw(t, "st"),
				m: iobench.Measurement{
					BlockSize: datasize.ByteSize(rapid.Uint32().Draw(t, "blockSize")),
					Duration:  time.Duration(rapid.IntRange(0, 1_000_000).Draw(t, "ms")) * time.Millisecond,
				},
			}
		})).Draw(t, "rows")

		type key struct {
			op iobench.Operation
			st iobench.Strategy
		}
		var sb strings.Builder
		sb.WriteString(header)
		model := map[key]iobench.Series{}
		for _, r := range rows {
			op := rapid.SampledFrom(operationSpellings[r.op]).Draw(t, "opSpelling")
			st := rapid.SampledFrom(strategySpellings[r.st]).Draw(t, "stSpelling")
			fmt.Fprintf(&sb, "%s,%s,%d,0,%d\n", op, st, uint64(r.m.BlockSize), r.m.Duration.Milliseconds())
			k := key{r.op, r.st}
			model[k] = append(model[k], r.m)
		}

		ds, err := iobench.ReadReport(strings.NewReader(sb.String()))
		require.NoError(t, err)
		require.Equal(t, len(rows), ds.Len())

		buckets := ds.Buckets()
		require.Len(t, buckets, 4)
		for _, b := range buckets {
			want := model[key{b.Operation, b.Strategy}]
			require.Empty(t, cmp.Diff(want, b.Series, cmpopts.EquateEmpty()), b.Label())
		}
	})
}
