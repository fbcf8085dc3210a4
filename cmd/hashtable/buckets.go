package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"
	"github.com/sirupsen/logrus"
	"github.com/webbmaffian/go-hashtable/hashtable"
)

var sampleKeys = []string{
	"Shinji", "Rei", "Asuka", "Mari", "Gendou", "Ritsuko", "Misato",
}

// runBuckets inserts keys into a table with one bucket per key and shows
// where each of them ends up. With live set, the chains are redrawn in
// place after every insert.
func runBuckets(ctx context.Context, w io.Writer, log logrus.FieldLogger, keys []string, delay time.Duration, live bool) (err error) {
	t, err := hashtable.New(len(keys))

	if err != nil {
		return
	}

	defer func() {
		err = errors.Join(err, t.Destroy())
	}()

	for _, key := range keys {
		bucket, err := t.Bucket(key)

		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s %d\n", key, bucket)
	}

	fmt.Fprintln(w)

	var view *chainView

	if live {
		view = newChainView(w, t.Cap())
	}

	for i, key := range keys {
		if ctx.Err() != nil {
			return
		}

		if err = insert(t, log, key, (i+1)*10); err != nil {
			break
		}

		if view != nil {
			if err = view.render(t); err != nil {
				break
			}

			if delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
			}
		}
	}

	if view == nil && err == nil {
		err = printChains(w, t)
	}

	if err != nil {
		return
	}

	fmt.Fprintln(w)

	for _, key := range keys {
		if err = printLookup(w, t, key); err != nil {
			return
		}
	}

	return
}

func printChains(w io.Writer, t *hashtable.Table) error {
	for bucket := 0; bucket < t.Cap(); bucket++ {
		line, err := chainLine(t, bucket)

		if err != nil {
			return err
		}

		fmt.Fprintln(w, line)
	}

	return nil
}

func chainLine(t *hashtable.Table, bucket int) (string, error) {
	keys, err := t.Chain(bucket)

	if err != nil {
		return "", err
	}

	if len(keys) == 0 {
		return fmt.Sprintf("%d: -", bucket), nil
	}

	return fmt.Sprintf("%d: %s", bucket, strings.Join(keys, " -> ")), nil
}

// One terminal line per bucket, rewritten in place. Frames are only
// flushed by render.
type chainView struct {
	writer *uilive.Writer
	lines  []io.Writer
}

func newChainView(out io.Writer, buckets int) *chainView {
	v := &chainView{
		writer: uilive.New(),
		lines:  make([]io.Writer, buckets),
	}

	v.writer.Out = out

	for i := range v.lines {
		v.lines[i] = v.writer.Newline()
	}

	return v
}

func (v *chainView) render(t *hashtable.Table) error {
	for bucket, line := range v.lines {
		s, err := chainLine(t, bucket)

		if err != nil {
			return err
		}

		fmt.Fprintln(line, s)
	}

	return v.writer.Flush()
}
