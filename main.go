package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"vcfheader/internal/config"
	"vcfheader/internal/header"
	"vcfheader/internal/model"
	"vcfheader/internal/source"
	"vcfheader/internal/tui"
	"vcfheader/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(cfg *config.Config, currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      cfg.Update.Owner,
		Repository: cfg.Update.Repository,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", cfg.Update.Owner, cfg.Update.Repository)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vcfheader [options] PATTERN\n\n")
		fmt.Fprintf(os.Stderr, "vcfheader merges the INFO and FORMAT header declarations of every VCF file\n")
		fmt.Fprintf(os.Stderr, "matching PATTERN (plain, .gz/.bgz or .zst) and fails if two files declare the\n")
		fmt.Fprintf(os.Stderr, "same field with a different Number or Type.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vcfheader 'data/*.vcf.gz'          # Print merged header report\n")
		fmt.Fprintf(os.Stderr, "  vcfheader -v -o r.txt 'data/**/*.vcf'  # Verbose report saved to file\n")
		fmt.Fprintf(os.Stderr, "  vcfheader --json 'data/*.vcf'      # Output merged fields as JSON\n")
		fmt.Fprintf(os.Stderr, "  vcfheader --tui 'data/*.vcf'       # Browse merged fields interactively\n")
		fmt.Fprintf(os.Stderr, "  vcfheader --web                    # Start Web Mode\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output merged header fields as JSON")
	outputFlag := pflag.StringP("output", "o", "", "Save report or JSON to the specified file")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include descriptions and source files in the report")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse merged fields in a terminal UI")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode")
	configFlag := pflag.StringP("config", "c", "", "Path to a vcfheader.yaml config file")
	pflag.IntP("parallelism", "p", 0, "Files read concurrently (0 = number of CPUs)")
	pflag.String("log-level", "warn", "Log level: debug, info, warn, error")
	pflag.String("addr", "localhost:8080", "Listen address for Web Mode")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("vcfheader version %s\n", model.Version)
		return
	}

	cfg, err := config.Load(*configFlag, pflag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *updateFlag {
		checkUpdate(cfg, model.Version)
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "vcfheader",
		Level:  cfg.Level(),
	})

	orch := header.NewOrchestrator(logger)
	orch.Parallelism = cfg.Parallelism

	if *webFlag {
		if err := web.StartServer(cfg.Web.Addr, orch, logger); err != nil {
			logger.Fatal("web server stopped", "error", err)
		}
		return
	}

	pattern := cfg.Pattern
	if pflag.NArg() > 0 {
		pattern = pflag.Arg(0)
	}
	if pattern == "" {
		pflag.Usage()
		os.Exit(2)
	}

	if *tuiFlag {
		runTuiMode(orch, pattern)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := orch.Run(ctx, pattern)
	if err != nil {
		reportError(ctx, orch, err)
		os.Exit(1)
	}

	var out string
	if *jsonFlag {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		out = string(b)
	} else {
		out = header.GenerateReport(res, *verboseFlag)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, []byte(out+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output to %s: %v\n", *outputFlag, err)
			os.Exit(1)
		}
		fmt.Printf("Output saved to %s\n", *outputFlag)
	} else {
		fmt.Println(out)
	}
}

// reportError prints err and, for a malformed line, the lines around it.
func reportError(ctx context.Context, orch *header.Orchestrator, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var fe *header.FormatError
	if !errors.As(err, &fe) || fe.File == "" || fe.Line < 1 {
		return
	}
	lc := source.GetLineContext(ctx, orch.Opener, fe.File, fe.Line)
	if lc.ErrorMsg != "" {
		return
	}
	fmt.Fprintln(os.Stderr)
	if lc.HasBefore2 {
		fmt.Fprintf(os.Stderr, "  %6d | %s\n", lc.LineNumber-2, lc.Before2)
	}
	if lc.HasBefore1 {
		fmt.Fprintf(os.Stderr, "  %6d | %s\n", lc.LineNumber-1, lc.Before1)
	}
	fmt.Fprintf(os.Stderr, "> %6d | %s\n", lc.LineNumber, lc.Target)
	if lc.HasAfter1 {
		fmt.Fprintf(os.Stderr, "  %6d | %s\n", lc.LineNumber+1, lc.After1)
	}
	if lc.HasAfter2 {
		fmt.Fprintf(os.Stderr, "  %6d | %s\n", lc.LineNumber+2, lc.After2)
	}
}

func runTuiMode(orch *header.Orchestrator, pattern string) {
	// Keep log output from corrupting the alternate screen.
	orch.Logger = nil
	m := tui.InitialModel(orch, pattern)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
