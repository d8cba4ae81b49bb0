// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package iobench

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrMissingColumn = constError("missing column")
const ErrUnknownOperation = constError("unknown operation")
const ErrMalformedRow = constError("malformed row")
