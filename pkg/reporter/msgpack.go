package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/docmodel/pkg/runner"
)

// MsgpackReporter writes the same layout as JSONReporter as one msgpack
// value.
type MsgpackReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewMsgpackReporter creates a new msgpack reporter.
func NewMsgpackReporter(opts Options) *MsgpackReporter {
	return &MsgpackReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MsgpackReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(r.opts, result)

	enc := msgpack.NewEncoder(r.bw)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode msgpack: %w", err)
	}
	return output.Summary.Features, nil
}
