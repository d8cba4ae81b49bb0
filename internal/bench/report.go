// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/c2h5oh/datasize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/petenewcomb/iobench"
)

// MetricsFile and SizeLogFile are the names of the files a benchmark leaves
// in its report directory.
const (
	MetricsFile = "metrics.csv"
	SizeLogFile = "size.log"
)

var reportHeader = []string{
	iobench.ColumnOperation,
	iobench.ColumnStrategy,
	iobench.ColumnBlockSize,
	iobench.ColumnFileSize,
	iobench.ColumnDuration,
}

// CSVLogger writes results in the report format understood by
// [iobench.ReadReport], flushing after every row so that an interrupted benchmark
// still leaves a usable report.
type CSVLogger struct {
	w     *csv.Writer
	upper cases.Caser
}

var _ Sink = (*CSVLogger)(nil)

// NewCSVLogger writes the report header to w and returns a logger for the
// rows that follow it.
func NewCSVLogger(w io.Writer) (*CSVLogger, error) {
	l := &CSVLogger{
		w:     csv.NewWriter(w),
		upper: cases.Upper(language.Und),
	}
	if err := l.write(reportHeader); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *CSVLogger) write(record []string) error {
	if err := l.w.Write(record); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Log appends one result row.
func (l *CSVLogger) Log(r Result) error {
	return l.write([]string{
		l.upper.String(r.Operation.String()),
		r.Strategy.String(),
		strconv.Itoa(r.BlockSize),
		strconv.FormatInt(r.FileSize, 10),
		strconv.FormatFloat(float64(r.Duration)/float64(time.Millisecond), 'f', 3, 64),
	})
}

// WriteSizeLog records the configured per-run data size, in bytes, at path.
func WriteSizeLog(path string, size datasize.ByteSize) error {
	return os.WriteFile(path, []byte(strconv.FormatUint(size.Bytes(), 10)), 0644)
}
