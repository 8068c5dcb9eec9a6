package cmd

import (
	"context"
	"io"
	"os"
)

type ioKey struct{}

// ioState carries the command's streams so helpers and tests can swap them
// without touching os.Std*.
type ioState struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func withIO(ctx context.Context, in io.Reader, out, err io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, ioState{in: in, out: out, err: err})
}

func ioFromContext(ctx context.Context) ioState {
	var state ioState
	if ctx != nil {
		state, _ = ctx.Value(ioKey{}).(ioState)
	}
	if state.in == nil {
		state.in = os.Stdin
	}
	if state.out == nil {
		state.out = os.Stdout
	}
	if state.err == nil {
		state.err = os.Stderr
	}
	return state
}

func stdinFromContext(ctx context.Context) io.Reader {
	return ioFromContext(ctx).in
}

func stdoutFromContext(ctx context.Context) io.Writer {
	return ioFromContext(ctx).out
}

func stderrFromContext(ctx context.Context) io.Writer {
	return ioFromContext(ctx).err
}
