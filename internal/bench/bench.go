// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package bench measures how long it takes to write and read back a file
// under each [Strategy] across a range of block sizes. Its results are the
// input of the chart generator.
package bench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/c2h5oh/datasize"
	"go.uber.org/zap"

	"github.com/petenewcomb/iobench"
)

// FilenamePrefix prefixes the name of every test data file.
const FilenamePrefix = "test-data"

// DefaultFileSize is the amount of data written and read by each run.
const DefaultFileSize = 100 * datasize.MB

// bufferSize matches the default buffer of the streams the report format
// was first produced with.
const bufferSize = 8192

// Result is the outcome of one benchmark run.
type Result struct {
	Operation iobench.Operation
	Strategy  Strategy
	BlockSize int
	// FileSize is the number of bytes written or read.
	FileSize int64
	Duration time.Duration
}

// Sink receives results as they are produced.
type Sink interface {
	Log(Result) error
}

type options struct {
	Log *zap.SugaredLogger
}

func newOptions() *options {
	return &options{
		Log: zap.NewNop().Sugar(),
	}
}

// Option configures a Benchmark.
type Option func(*options)

// WithLog sets the logger for the Benchmark.
func WithLog(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.Log = log
	}
}

// Benchmark writes and reads test data files in a working directory.
type Benchmark struct {
	dir      string
	fileSize int64
	log      *zap.SugaredLogger
}

// New returns a Benchmark that keeps its test data in dir and moves fileSize
// bytes per write run.
func New(dir string, fileSize datasize.ByteSize, opts ...Option) *Benchmark {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Benchmark{
		dir:      dir,
		fileSize: int64(fileSize.Bytes()),
		log:      o.Log,
	}
}

// BlockSizes returns the block sizes exercised for a file system whose
// block size is fsBlockSize: a fixed set of small sizes followed by
// sizes around every multiple of 512 from 1024 up to twice fsBlockSize.
func BlockSizes(fsBlockSize int) []int {
	sizes := []int{1, 2, 3, 4, 5, 10, 20, 50, 100, 200, 256, 500, 512}
	for x := 1024; x <= 2*fsBlockSize; x += 512 {
		sizes = append(sizes, x-100, x, x+100)
	}
	return sizes
}

func (b *Benchmark) path(s Strategy, blockSize int) string {
	return filepath.Join(b.dir, FilenamePrefix+"-"+s.String()+"-"+strconv.Itoa(blockSize)+".bin")
}

func checkBlockSize(s Strategy, blockSize int) error {
	if s.BlockByBlock() && blockSize <= 0 {
		return fmt.Errorf("%w %d for %v", ErrInvalidBlockSize, blockSize, s)
	}
	return nil
}

// Produce writes a test data file with strategy s and reports how long it
// took, including opening and closing the file.
func (b *Benchmark) Produce(s Strategy, blockSize int) (Result, error) {
	if err := checkBlockSize(s, blockSize); err != nil {
		return Result{}, err
	}
	b.log.Infow("generating test data",
		"strategy", s,
		"bytes", b.fileSize,
		"blockSize", blockSize)

	start := time.Now()
	path := b.path(s, blockSize)
	if err := b.produceFile(path, s, blockSize); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	elapsed := time.Since(start)

	b.log.Infow("done", "duration", elapsed)
	return Result{
		Operation: iobench.Write,
		Strategy:  s,
		BlockSize: blockSize,
		FileSize:  b.fileSize,
		Duration:  elapsed,
	}, nil
}

func (b *Benchmark) produceFile(path string, s Strategy, blockSize int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !s.Buffered() {
		return produce(f, s, b.fileSize, blockSize)
	}
	w := bufio.NewWriterSize(f, bufferSize)
	if err := produce(w, s, b.fileSize, blockSize); err != nil {
		return err
	}
	return w.Flush()
}

// produce writes n bytes to w, one byte per call or in blocks of blockSize
// followed by a partial block.
func produce(w io.Writer, s Strategy, n int64, blockSize int) error {
	if !s.BlockByBlock() {
		one := []byte{'h'}
		for range n {
			if _, err := w.Write(one); err != nil {
				return err
			}
		}
		return nil
	}

	block := make([]byte, blockSize)
	for range n / int64(blockSize) {
		for j := range block {
			block[j] = 'b'
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	if remainder := int(n % int64(blockSize)); remainder != 0 {
		for j := range remainder {
			block[j] = 'B'
		}
		if _, err := w.Write(block[:remainder]); err != nil {
			return err
		}
	}
	return nil
}

// Consume reads back the file written by Produce for the same strategy and
// block size, reporting the number of bytes read as the file size.
func (b *Benchmark) Consume(s Strategy, blockSize int) (Result, error) {
	if err := checkBlockSize(s, blockSize); err != nil {
		return Result{}, err
	}
	b.log.Infow("consuming test data",
		"strategy", s,
		"blockSize", blockSize)

	start := time.Now()
	path := b.path(s, blockSize)
	total, err := consumeFile(path, s, blockSize)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	elapsed := time.Since(start)

	b.log.Infow("done", "bytesRead", total, "duration", elapsed)
	return Result{
		Operation: iobench.Read,
		Strategy:  s,
		BlockSize: blockSize,
		FileSize:  total,
		Duration:  elapsed,
	}, nil
}

func consumeFile(path string, s Strategy, blockSize int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if s.Buffered() {
		r = bufio.NewReaderSize(f, bufferSize)
	}
	return consume(r, s, blockSize)
}

// consume drains r, one byte per call or a block at a time, and returns the
// number of bytes read.
func consume(r io.Reader, s Strategy, blockSize int) (int64, error) {
	size := 1
	if s.BlockByBlock() {
		size = blockSize
	}
	buf := make([]byte, size)

	var total int64
	for {
		n, err := r.Read(buf)
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

type run struct {
	op        iobench.Operation
	strategy  Strategy
	blockSize int
}

// plan lists the runs in execution order: all writes before all reads,
// buffered before unbuffered, and for each the byte-by-byte run followed by
// the block-by-block run for every block size.
func plan(fsBlockSize int) []run {
	sizes := BlockSizes(fsBlockSize)
	var runs []run
	for _, op := range []iobench.Operation{iobench.Write, iobench.Read} {
		for _, pair := range [][2]Strategy{
			{ByteByByteWithBufferedStream, BlockByBlockWithBufferedStream},
			{ByteByByteWithoutBufferedStream, BlockByBlockWithoutBufferedStream},
		} {
			runs = append(runs, run{op, pair[0], 0})
			for _, size := range sizes {
				runs = append(runs, run{op, pair[1], size})
			}
		}
	}
	return runs
}

// Run executes the whole benchmark for a file system with the given block
// size and hands every result to sink as soon as it is available. The
// context is checked between runs.
func (b *Benchmark) Run(ctx context.Context, fsBlockSize int, sink Sink) error {
	if fsBlockSize <= 0 {
		return fmt.Errorf("%w %d for the file system", ErrInvalidBlockSize, fsBlockSize)
	}

	var lastOp iobench.Operation = -1
	var lastBuffered bool
	for _, r := range plan(fsBlockSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.op != lastOp || r.strategy.Buffered() != lastBuffered {
			lastOp, lastBuffered = r.op, r.strategy.Buffered()
			b.log.Infof("*** benchmarking %s operations (buffered=%t)", r.op, lastBuffered)
		}

		var res Result
		var err error
		if r.op == iobench.Write {
			res, err = b.Produce(r.strategy, r.blockSize)
		} else {
			res, err = b.Consume(r.strategy, r.blockSize)
		}
		if err != nil {
			return err
		}
		if err := sink.Log(res); err != nil {
			return fmt.Errorf("failed to log result: %w", err)
		}
	}
	return nil
}
