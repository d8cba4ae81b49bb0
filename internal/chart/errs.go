// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrUnsupportedFormat = constError("unsupported chart format")
const ErrEmptyPalette = constError("empty palette")
const ErrUnknownColor = constError("unknown color")
