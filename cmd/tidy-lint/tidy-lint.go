package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/tidy"
	"github.com/lestrrat-go/tidy/s11n"
	"golang.org/x/term"
)

type cmdopts struct {
	Config         string `long:"config" description:"TOML configuration file"`
	InputEncoding  string `long:"input-encoding" description:"encoding of the input"`
	OutputEncoding string `long:"output-encoding" description:"encoding of the output"`
	XML            bool   `long:"xml" description:"parse the input as XML"`
	XHTML          bool   `long:"xhtml" description:"write XHTML"`
	FixBackslash   bool   `long:"fix-backslash" description:"rewrite backslashes in URLs"`
	Quiet          bool   `long:"quiet" short:"q" description:"do not write the document"`
	Trace          bool   `long:"trace" description:"log parser spans to stderr"`
	Version        bool   `long:"version" description:"display the version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("tidy-lint: using tidy version %s\n", tidy.Version)
}

func showUsage() {
	fmt.Printf(`Usage : tidy-lint [options] HTMLfiles ...
	Parse the HTML files, report problems and output the cleaned document
	--config FILE : read settings from a TOML file
	--xml : parse the input as generic XML
	--xhtml : write XHTML
	--quiet : only report problems
	--version : display the version of the library used
`)
}

func loadConfig(opts *cmdopts) (*tidy.Config, error) {
	cfg := tidy.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = tidy.LoadConfig(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.InputEncoding != "" {
		cfg.InputEncoding = opts.InputEncoding
	}
	if opts.OutputEncoding != "" {
		cfg.OutputEncoding = opts.OutputEncoding
	}
	if opts.XML {
		cfg.XMLTags = true
	}
	if opts.XHTML {
		cfg.XMLOut = true
	}
	if opts.FixBackslash {
		cfg.FixBackslash = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exit status follows the worst diagnostic: 1 for warnings, 2 for
// errors
func exitCode(s tidy.Severity) int {
	switch s {
	case tidy.SeverityError:
		return 2
	case tidy.SeverityWarning:
		return 1
	}
	return 0
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 2
	}

	if opts.Version {
		showVersion()
		return 0
	}

	cfg, err := loadConfig(&opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 2
	}

	var inputs []string
	switch {
	case len(args) > 0:
		inputs = args
	case !term.IsTerminal(int(os.Stdin.Fd())):
		inputs = []string{"-"}
	default:
		showUsage()
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()
	if opts.Trace {
		ctx = tidy.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var worst tidy.Severity
	for _, name := range inputs {
		s, err := lint(ctx, cfg, logger, name, &opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
			return 2
		}
		worst = max(worst, s)
	}
	return exitCode(worst)
}

func lint(ctx context.Context, cfg *tidy.Config, logger *slog.Logger, name string, opts *cmdopts) (tidy.Severity, error) {
	var buf []byte
	var err error
	if name == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(name)
	}
	if err != nil {
		return 0, err
	}

	var diags tidy.DiagnosticList
	doc, err := tidy.Parse(ctx, buf, tidy.WithConfig(cfg), tidy.WithDiagnosticSink(&diags))
	if err != nil {
		return 0, err
	}

	fileLog := tidy.NewLogSink(logger.With(slog.String("file", name)))
	for _, d := range diags {
		fileLog.Report(d)
	}

	if !opts.Quiet {
		scheme, err := cfg.OutputScheme()
		if err != nil {
			return 0, err
		}
		newline, err := cfg.NewlineSequence()
		if err != nil {
			return 0, err
		}
		d := s11n.Dumper{XML: cfg.XMLOut, Scheme: scheme, Newline: newline}
		var out bytes.Buffer
		if err := d.DumpDoc(&out, doc); err != nil {
			return 0, err
		}
		if _, err := out.WriteTo(os.Stdout); err != nil {
			return 0, err
		}
	}

	logger.Info("checked document",
		slog.String("file", name),
		slog.String("version", doc.Versions().Apparent()),
		slog.Int("diagnostics", len(diags)),
	)
	return diags.MaxSeverity(), nil
}
