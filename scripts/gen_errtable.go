// Command gen_errtable regenerates the ErrCode constant block and
// errMessages map in errors.go from a plain-text catalog (one "Ennn message
// text" line per code), piping its output through goimports the same way
// the host module's own generator pipes generated VM test helpers through
// it.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	Name() string
	Read(p []byte) (int, error)
	Close() error
}

var (
	in  namedReader = os.Stdin
	out *os.File    = os.Stdout
)

func parseFlags() {
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in = f
		args = args[1:]
	}

	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[0], err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})
	var fmtOut *os.File = out

	eg.Go(func() error {
		goimports := exec.CommandContext(ctx, "goimports")
		pipe, err := goimports.StdinPipe()
		if err != nil {
			return err
		}
		defer fmtOut.Close()
		goimports.Stdout = fmtOut
		goimports.Stderr = os.Stderr

		fmtOutPipe = pipe
		close(ready)
		if err := goimports.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
		case <-ready:
		}
		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := fmtOutPipe.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var fmtOutPipe interface {
	Write([]byte) (int, error)
	Close() error
}

var catalogLine = regexp.MustCompile(`^E(\d+)\s+(.+)$`)

func run(ctx context.Context) error {
	var buf bytes.Buffer
	buf.WriteString("package main\n\n")
	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")
	buf.WriteString("const (\n")

	type entry struct{ code, message string }
	var entries []entry

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		match := catalogLine.FindStringSubmatch(sc.Text())
		if match == nil {
			continue
		}
		entries = append(entries, entry{code: match[1], message: match[2]})
	}
	if err := sc.Err(); err != nil {
		return err
	}

	for _, e := range entries {
		n, err := strconv.Atoi(e.code) // "079" must not be written as an octal literal
		if err != nil {
			return err
		}
		fmt.Fprintf(&buf, "\tE%s ErrCode = %d\n", e.code, n)
	}
	buf.WriteString(")\n\n")

	buf.WriteString("var errMessages = map[ErrCode]string{\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "\tE%s: %q,\n", e.code, e.message)
	}
	buf.WriteString("}\n")

	_, err := fmtOutPipe.Write(buf.Bytes())
	if err := ctx.Err(); err != nil {
		return err
	}
	return err
}
