package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/jxtmpl"
	"github.com/lestrrat-go/jxtmpl/event"
	"github.com/lestrrat-go/jxtmpl/exprcheck"
	"github.com/lestrrat-go/jxtmpl/internal/cliutil"
	"github.com/lestrrat-go/jxtmpl/internal/config"
	"github.com/lestrrat-go/jxtmpl/s11n"
	"github.com/lestrrat-go/jxtmpl/sink"
)

type cmdopts struct {
	Config       string `long:"config" description:"directory holding jxtmpl.env"`
	Encoding     string `long:"encoding" description:"character encoding of the input"`
	HTMLEntities bool   `long:"html-entities" description:"accept HTML named entities"`
	Strict       bool   `long:"strict" description:"require elements to nest properly"`
	CheckExpr    bool   `long:"check-expr" description:"compile every embedded expression"`
	Tree         bool   `long:"tree" description:"print the parsed tree instead of the events"`
	Trace        bool   `long:"trace" description:"log parser activity to stderr"`
	Version      bool   `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("jxtmpl-lint: using jxtmpl version %s\n", jxtmpl.Version)
}

func showUsage() {
	fmt.Printf(`Usage : jxtmpl-lint [options] templates ...
	Parse the template files and output the result of the parsing
	--config dir    : read defaults from dir/jxtmpl.env
	--encoding name : decode the input from the named encoding
	--html-entities : accept HTML named entities such as &nbsp;
	--strict        : report elements that are not properly nested
	--check-expr    : compile every embedded expression
	--tree          : print the parsed tree instead of the events
	--trace         : log parser activity to stderr
	--version       : display the version of the template library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}
	cfg.HTMLEntities = cfg.HTMLEntities || opts.HTMLEntities
	cfg.StrictNesting = cfg.StrictNesting || opts.Strict
	cfg.CheckExpr = cfg.CheckExpr || opts.CheckExpr
	if opts.Tree {
		cfg.Output = config.OutputTree
	}

	inputCh := make(chan jxtmpl.Source)
	switch {
	case len(args) > 0: // filename present
		go func() {
			defer close(inputCh)
			for _, f := range args {
				inputCh <- jxtmpl.Source{SystemID: f}
			}
		}()
	case !cliutil.IsTty(os.Stdin.Fd()):
		go func() {
			defer close(inputCh)
			inputCh <- jxtmpl.Source{SystemID: "-", Reader: os.Stdin}
		}()
	default:
		showUsage()
		return 1
	}

	ctx := context.Background()
	if opts.Trace {
		ctx = jxtmpl.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	status := 0
	for src := range inputCh {
		if err := lint(ctx, os.Stdout, cfg, src); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			status = 1
		}
	}
	return status
}

func lint(ctx context.Context, out io.Writer, cfg config.Config, src jxtmpl.Source) error {
	var recorder *event.Recorder
	var builder *jxtmpl.TreeBuilder
	var handler sink.Handler
	if cfg.Output == config.OutputTree {
		builder = jxtmpl.NewTreeBuilder()
		handler = builder
	} else {
		recorder = event.NewRecorder()
		handler = recorder
	}
	if cfg.CheckExpr {
		handler = exprcheck.New(handler)
	}

	p := jxtmpl.NewParser(
		jxtmpl.WithHandler(handler),
		jxtmpl.WithEncoding(cfg.Encoding),
		jxtmpl.WithHTMLEntities(cfg.HTMLEntities),
		jxtmpl.WithStrictNesting(cfg.StrictNesting),
	)
	if _, err := p.ParseSource(ctx, src); err != nil {
		return err
	}

	if builder != nil {
		d := s11n.Dumper{}
		if err := d.DumpDoc(out, builder.Document()); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	}
	return event.Format(out, recorder.Events())
}
