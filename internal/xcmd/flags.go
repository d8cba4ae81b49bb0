// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package xcmd holds command line plumbing shared by the commands.
package xcmd

import (
	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

type byteSizeValue struct {
	v *datasize.ByteSize
}

// ByteSize adapts a byte size to a flag value accepting the datasize text
// form, e.g. "128", "4KB" or "100MB".
func ByteSize(v *datasize.ByteSize) pflag.Value {
	return byteSizeValue{v}
}

func (f byteSizeValue) String() string {
	return f.v.String()
}

func (f byteSizeValue) Set(s string) error {
	return f.v.UnmarshalText([]byte(s))
}

func (byteSizeValue) Type() string {
	return "bytes"
}

type levelValue struct {
	v *zapcore.Level
}

// Level adapts a logging level to a flag value.
func Level(v *zapcore.Level) pflag.Value {
	return levelValue{v}
}

func (f levelValue) String() string {
	return f.v.String()
}

func (f levelValue) Set(s string) error {
	return f.v.Set(s)
}

func (levelValue) Type() string {
	return "level"
}
