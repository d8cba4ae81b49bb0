// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package iobench models the results of an I/O benchmark that compares
// buffered and unbuffered reads and writes across a range of block sizes, and
// reads them back from the comma-separated report the benchmark emits.
//
// A report is loaded into a [Dataset], a fixed grid of four [Series] keyed by
// [Operation] and [Strategy]. The grid always holds all four buckets, so
// consumers such as chart renderers can iterate it in a stable order without
// caring which combinations the report actually covered. Measurements keep
// the order in which they appeared in the report.
package iobench

//go:generate go run ./internal/cmd/chartgen report/metrics.csv
