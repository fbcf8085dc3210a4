package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	capacity := flag.Int("capacity", 10, "number of buckets for the demo command")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between inserts in the buckets command when rendering live")
	verbose := flag.Bool("v", false, "log every table operation")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 {
		return fmt.Errorf("exactly one (1) argument expected, and this must be one of: demo, buckets")
	}

	switch cmd := flag.Arg(0); cmd {
	case "demo":
		return runDemo(os.Stdout, log, *capacity)

	case "buckets":
		live := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

		if !live {
			*delay = 0
		}

		return runBuckets(ctx, os.Stdout, log, sampleKeys, *delay, live)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
