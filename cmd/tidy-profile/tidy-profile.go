package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/tidy"
	"github.com/lestrrat-go/tidy/s11n"
)

type cmdopts struct {
	Iterations int    `long:"iterations" default:"2000" description:"number of parse and dump rounds"`
	Profile    string `long:"profile" default:"cpu" choice:"cpu" choice:"mem" description:"profile type"`
	Output     string `long:"output" short:"o" description:"profile file (default tidy_<profile>.prof)"`
	Port       int    `long:"port" default:"0" description:"serve the profile with go tool pprof on this port"`
	XHTML      bool   `long:"xhtml" description:"write XHTML while profiling"`
}

func main() {
	os.Exit(_main())
}

func _main() int {
	var opts cmdopts
	args, err := flags.Parse(&opts)
	if err != nil {
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: tidy-profile [options] HTMLfile\n")
		return 1
	}

	input, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %s\n", args[0], err)
		return 1
	}

	profileFile := opts.Output
	if profileFile == "" {
		profileFile = fmt.Sprintf("tidy_%s.prof", opts.Profile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := workload{
		parser: tidy.NewParser(),
		dumper: &s11n.Dumper{XML: opts.XHTML},
		input:  input,
	}
	switch opts.Profile {
	case "cpu":
		err = w.cpuProfile(ctx, opts.Iterations, profileFile)
	case "mem":
		err = w.memProfile(ctx, opts.Iterations, profileFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate profile: %s\n", err)
		return 1
	}
	fmt.Printf("profile written to %s (%d iterations)\n", profileFile, opts.Iterations)

	if opts.Port == 0 {
		return 0
	}
	if err := servePprof(ctx, profileFile, opts.Port); err != nil {
		fmt.Fprintf(os.Stderr, "failed to serve profile: %s\n", err)
		return 1
	}
	return 0
}

type workload struct {
	parser *tidy.Parser
	dumper *s11n.Dumper
	input  []byte
}

func (w *workload) round(ctx context.Context) error {
	doc, err := w.parser.Parse(ctx, w.input)
	if err != nil {
		return err
	}
	return w.dumper.DumpDoc(io.Discard, doc)
}

func (w *workload) cpuProfile(ctx context.Context, iterations int, profileFile string) error {
	f, err := os.Create(profileFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()

	for i := range iterations {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.round(ctx); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	return nil
}

func (w *workload) memProfile(ctx context.Context, iterations int, profileFile string) error {
	// keep the documents alive so the heap profile shows them
	docs := make([]any, 0, iterations)
	for i := range iterations {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		doc, err := w.parser.Parse(ctx, w.input)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		docs = append(docs, doc)
	}

	f, err := os.Create(profileFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return err
	}
	_ = len(docs)
	return nil
}

// servePprof runs the pprof web interface until ctx is canceled.
func servePprof(ctx context.Context, profileFile string, port int) error {
	cmd := exec.CommandContext(ctx, "go", "tool", "pprof", "-http", fmt.Sprintf(":%d", port), profileFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	fmt.Printf("serving %s at http://localhost:%d/ui/ (Ctrl+C to stop)\n", profileFile, port)
	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
