package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/waxwane/intercal72/internal/flushio"
	"github.com/waxwane/intercal72/internal/logio"
)

func main() {
	var (
		inPath    = flag.String("i", "", "input file for WRITE IN (default stdin)")
		outPath   = flag.String("o", "", "output file for READ OUT (default stdout)")
		optimize  = flag.Bool("O", false, "run the optimizer before executing")
		translate = flag.String("b", "", "translate to a standalone Go source file instead of running")
		seed      = flag.Int64("seed", 1, "PRNG seed for probability rolls and the simulated compiler bug")
		bugChance = flag.Int("bug-chance", 1000, "denominator of the E774 simulated-bug probability; 0 disables it")
		memLimit  = flag.Uint("mem-limit", 0, "bound on variable numbers in each storage class (array elements not counted); 0 is unlimited")
		timeout   = flag.Duration("timeout", 0, "abort with E778 after this long; 0 disables the timeout")
		trace     = flag.Bool("trace", false, "log each dispatched statement to stderr")
		dump      = flag.Bool("dump", false, "dump interpreter state to stderr after the run ends or aborts")
	)
	flag.Parse()

	elog := &logio.Logger{}
	elog.SetOutput(os.Stderr)

	if flag.NArg() != 1 {
		elog.Errorf("usage: %s [flags] program.i", os.Args[0])
		os.Exit(2)
	}
	srcPath := flag.Arg(0)

	src, err := os.Open(srcPath)
	if err != nil {
		elog.Errorf("%v", err)
		os.Exit(2)
	}
	defer src.Close()

	lex := NewLexer(src, srcPath)
	prog, err := NewParser(lex).ParseProgram()
	if err != nil {
		reportAndExit(err)
	}

	if err := Link(prog); err != nil {
		reportAndExit(err)
	}

	if *optimize {
		Optimize(prog)
	}

	if *translate != "" {
		out, err := os.Create(*translate)
		if err != nil {
			elog.Errorf("%v", err)
			os.Exit(2)
		}
		defer out.Close()
		if err := NewTranslator(prog, "main").Emit(out); err != nil {
			elog.Errorf("%v", err)
			os.Exit(2)
		}
		return
	}

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			elog.Errorf("%v", err)
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			elog.Errorf("%v", err)
			os.Exit(2)
		}
		defer f.Close()
		out = f
	}
	wf := flushio.NewWriteFlusher(out)

	opts := []InterpOption{
		WithOutput(wf),
		WithInput(in),
		WithSeed(*seed),
		WithBugChance(*bugChance),
		WithMemLimit(*memLimit),
	}
	if *trace {
		opts = append(opts, WithTrace(log.New(os.Stderr, "", 0)))
	}

	m := NewInterp(prog, opts...)

	ctx := context.Background()
	var cancel context.CancelFunc
	if *timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runErr := m.Run(ctx)
	if err := wf.Flush(); err != nil {
		elog.ErrorIf(err)
	}
	if *dump {
		interpDumper{m: m, out: os.Stderr}.dump()
	}
	if runErr != nil {
		reportAndExit(runErr)
	}
	os.Exit(elog.ExitCode())
}

// reportAndExit renders err as the caret diagnostic §7 describes and exits:
// 2 for a compile-time rejection (*Error.Fatal), 1 for anything discovered
// only at runtime. It is also the error sink a translated program's
// generated main calls into.
func reportAndExit(err error) {
	if ie, ok := err.(*Error); ok {
		fmt.Fprintln(os.Stderr, ie.Report())
		if ie.Fatal {
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

