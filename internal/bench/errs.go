// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrInvalidBlockSize = constError("invalid block size")
