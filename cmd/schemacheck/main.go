package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemacheck"
	"github.com/reoring/schemacheck/i18n"
	"github.com/reoring/schemacheck/loader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		os.Exit(checkCmd(os.Args[2:], os.Stdout, os.Stderr))
	case "keywords":
		os.Exit(keywordsCmd(os.Args[2:], os.Stdout, os.Stderr))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemacheck CLI\n\nUsage:\n  schemacheck check [-draft draft-04] [-format text|json] [-failfast] [-lang en|ja] [-v] file...\n  schemacheck keywords [-draft draft-04]\n\nNotes:\n  - Files ending in .yaml/.yml are read as YAML, everything else as JSON.\n  - Exit status is 1 when any file has syntax errors, 2 on usage or input errors.")
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var draftName, format, lang string
	var failFast, verbose, quiet bool
	fs.StringVar(&draftName, "draft", "", "force a draft (draft-03, draft-04, draft-06); default: $schema, else draft-04")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	fs.StringVar(&lang, "lang", "en", "message language: en or ja")
	fs.BoolVar(&failFast, "failfast", false, "stop at the first error in each file")
	fs.BoolVar(&quiet, "q", false, "do not report unknown keywords")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 || (format != "text" && format != "json") {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(lang)
	logger := newLogger(stderr, verbose)

	opt := schemacheck.CheckOpt{FailFast: failFast, Logger: logger, SkipUnknownWarnings: quiet}
	if draftName != "" {
		d, err := schemacheck.ParseDraft(draftName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		opt.Draft = d
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	status := 0
	results := make(map[string]*schemacheck.Report, fs.NArg())
	for _, path := range fs.Args() {
		doc, err := loader.File(path)
		if err != nil {
			logger.Error("cannot load schema", "file", path, "err", err)
			return 2
		}
		report, err := schemacheck.Check(ctx, doc, opt)
		if err != nil && !errors.Is(err, schemacheck.ErrAborted) {
			logger.Error("schema check failed", "file", path, "err", err)
			return 2
		}
		if !report.IsSuccess() {
			status = 1
		}
		results[path] = report
		if format == "text" {
			writeText(stdout, path, report)
		}
	}
	if format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			logger.Error("encoding report", "err", err)
			return 2
		}
	}
	return status
}

func writeText(w io.Writer, path string, r *schemacheck.Report) {
	if r.Len() == 0 {
		fmt.Fprintf(w, "%s: ok\n", path)
		return
	}
	for _, m := range r.Messages() {
		ptr := m.Pointer
		if ptr == "" {
			ptr = "#"
		}
		if m.Keyword != "" {
			fmt.Fprintf(w, "%s: %s: %s [%s] %s: %s\n", path, m.Level, ptr, m.Keyword, m.ID, m.Text)
			continue
		}
		fmt.Fprintf(w, "%s: %s: %s %s: %s\n", path, m.Level, ptr, m.ID, m.Text)
	}
}

func keywordsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("keywords", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var draftName string
	fs.StringVar(&draftName, "draft", string(schemacheck.DefaultDraft), "draft to list")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	d, err := schemacheck.ParseDraft(draftName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	dict, err := schemacheck.DictionaryFor(d)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	for _, kw := range dict.Keywords() {
		fmt.Fprintln(stdout, kw)
	}
	return 0
}
