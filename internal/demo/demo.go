// Package demo walks a dynarray.Array through every way of reading it,
// printing the elements as it goes.
package demo

import (
	"context"
	"fmt"
	"io"
	"unsafe"

	"github.com/dustin/go-humanize"
	"go.llib.dev/dynarray/pkg/dynarray"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
)

// Item is a demo element that logs its own teardown.
type Item struct {
	Value int

	ctx    context.Context
	logger *logging.Logger
}

func (i Item) String() string { return fmt.Sprintf("Item{Value: %d}", i.Value) }

func (i Item) Destroy() {
	if i.logger == nil {
		return
	}
	i.logger.Info(i.ctx, "dropping item", logging.Field("value", i.Value))
}

type Command struct {
	Count int `flag:"count" env:"DYNARRAY_COUNT" default:"5" desc:"number of items to push"`

	Logger *logging.Logger
}

func (cmd Command) Summary() string { return "exercise a dynamic array by index, by reference and by ownership" }

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	if cmd.Count < 0 {
		var out io.Writer = w
		if ew, ok := w.(cli.ErrorWriter); ok {
			out = ew.Stderr()
		}
		w.ExitCode(cli.ExitCodeBadRequest)
		fmt.Fprintf(out, "count must not be negative: %d\n", cmd.Count)
		return
	}
	var (
		ctx = r.Context()
		arr = dynarray.New[Item]()
	)
	defer arr.Close()

	for i := 0; i < cmd.Count; i++ {
		arr.Push(Item{Value: i, ctx: ctx, logger: cmd.Logger})
	}
	fmt.Fprintf(w, "len=%d cap=%d footprint=%s\n", arr.Len(), arr.Cap(), footprint(arr))

	fmt.Fprintln(w, "Loop by get()")
	for i := 0; i < arr.Len(); i++ {
		item, _ := arr.Get(i)
		fmt.Fprintln(w, item)
	}

	fmt.Fprintln(w, "Loop by ref iterator")
	for item := range arr.All() {
		fmt.Fprintln(w, item)
	}

	fmt.Fprintln(w, "Loop by owned iterator")
	for item := range arr.Drain() {
		fmt.Fprintln(w, item)
		item.Destroy()
	}
	fmt.Fprintln(w, "Loop by owned iterator done")

	fmt.Fprintln(w, "end of demo")
}

func footprint(arr *dynarray.Array[Item]) string {
	var zero Item
	return humanize.IBytes(uint64(arr.Cap()) * uint64(unsafe.Sizeof(zero)))
}
