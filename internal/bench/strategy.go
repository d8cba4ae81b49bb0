// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import "fmt"

// Strategy describes how bytes are moved between the benchmark and the file
// system: one at a time or in blocks, with or without a buffering layer.
type Strategy int

const (
	ByteByByteWithoutBufferedStream Strategy = iota
	ByteByByteWithBufferedStream
	BlockByBlockWithoutBufferedStream
	BlockByBlockWithBufferedStream
	strategyCount
)

var strategyNames = [strategyCount]string{
	"ByteByByteWithoutBufferedStream",
	"ByteByByteWithBufferedStream",
	"BlockByBlockWithoutBufferedStream",
	"BlockByBlockWithBufferedStream",
}

func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Buffered reports whether the file is wrapped in a bufio reader or writer.
func (s Strategy) Buffered() bool {
	return s == ByteByByteWithBufferedStream || s == BlockByBlockWithBufferedStream
}

// BlockByBlock reports whether bytes are transferred in blocks rather than
// one at a time.
func (s Strategy) BlockByBlock() bool {
	return s == BlockByBlockWithoutBufferedStream || s == BlockByBlockWithBufferedStream
}
