package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime/pprof"
	"time"

	"github.com/lestrrat-go/jxtmpl"
	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/lestrrat-go/jxtmpl/s11n"
)

const usage = `jxtmpl-flamegraph - Profile the template parser

Usage:
  jxtmpl-flamegraph [options] <template-file>

Options:
  -iterations int    Number of parsing iterations (default: 2000)
  -port int         pprof HTTP server port (default: 8080)
  -profile string   Profile type: cpu, mem (default: cpu)
  -no-server        Only write the profile, do not start pprof
  -help             Show this help message

The profile is written to jxtmpl_<type>.prof and opened with
"go tool pprof -http", whose flame graph view is under /ui/flamegraph.
`

func main() {
	var (
		iterations = flag.Int("iterations", 2000, "Number of parsing iterations")
		port       = flag.Int("port", 8080, "HTTP server port")
		profile    = flag.String("profile", "cpu", "Profile type: cpu, mem")
		noServer   = flag.Bool("no-server", false, "Only write the profile")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		fmt.Print(usage)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: template file argument required\n\n")
		fmt.Print(usage)
		os.Exit(1)
	}

	file := flag.Arg(0)
	if *profile != "cpu" && *profile != "mem" {
		fmt.Fprintf(os.Stderr, "Error: profile must be 'cpu' or 'mem'\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read template file: %v\n", err)
		os.Exit(1)
	}

	profileFile := fmt.Sprintf("jxtmpl_%s.prof", *profile)
	fmt.Printf("Generating %s profile over %d iterations of %s...\n", *profile, *iterations, file)
	if err := generateProfile(data, *iterations, *profile, profileFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to generate profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile generated: %s\n", profileFile)

	if *noServer {
		return
	}
	if err := startPprofServer(profileFile, *port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateProfile(data []byte, iterations int, profileType, profileFile string) error {
	// Disable tracing for performance
	jxtmpl.SetTracingEnabled(false)
	ctx := context.Background()
	parser := jxtmpl.NewParser()

	switch profileType {
	case "cpu":
		return generateCPUProfile(ctx, parser, data, iterations, profileFile)
	case "mem":
		return generateMemProfile(ctx, parser, data, iterations, profileFile)
	default:
		return fmt.Errorf("unsupported profile type: %s", profileType)
	}
}

func generateCPUProfile(ctx context.Context, parser *jxtmpl.Parser, data []byte, iterations int, profileFile string) error {
	f, err := os.Create(profileFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()

	var d s11n.Dumper
	for i := range iterations {
		doc, err := parser.Parse(ctx, data)
		if err != nil {
			return fmt.Errorf("parse failed at iteration %d: %w", i, err)
		}

		// serialization is part of the picture too
		if err := d.DumpDoc(io.Discard, doc); err != nil {
			return fmt.Errorf("serialization failed at iteration %d: %w", i, err)
		}
	}
	return nil
}

func generateMemProfile(ctx context.Context, parser *jxtmpl.Parser, data []byte, iterations int, profileFile string) error {
	docs := make([]*node.Document, 0, iterations)
	for range iterations {
		doc, err := parser.Parse(ctx, data)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
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

	// keep docs reachable until the heap is written
	_ = len(docs)
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"): // Linux
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"): // macOS
		cmd = exec.Command("open", url)
	case commandExists("cmd"): // Windows
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("no suitable browser opener found")
	}

	return cmd.Start()
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func startPprofServer(profileFile string, port int) error {
	fmt.Printf("Starting pprof server on port %d...\n", port)
	url := fmt.Sprintf("http://localhost:%d/ui/flamegraph", port)

	cmd := exec.Command("go", "tool", "pprof", "-no_browser", "-http", fmt.Sprintf(":%d", port), profileFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start pprof server: %w", err)
	}

	// Wait a moment for server to start
	time.Sleep(2 * time.Second)

	if err := openBrowser(url); err != nil {
		fmt.Printf("Could not open browser automatically. Please open: %s\n", url)
	}
	fmt.Printf("Press Ctrl+C to stop the server\n")

	return cmd.Wait()
}
