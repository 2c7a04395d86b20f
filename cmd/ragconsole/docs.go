package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"rag-console/internal/docs"
)

// runDocs handles the non-interactive document commands and returns the exit code.
func runDocs(ctx context.Context, manager *docs.Manager, args []string, in io.Reader, out io.Writer) int {
	switch args[0] {
	case "list":
		listing := manager.List(ctx)
		printListing(out, listing)
		if listing.Err != nil {
			return 1
		}
		return 0

	case "upload":
		path := ""
		if len(args) > 1 {
			path = args[1]
		}
		if _, ok := docs.CheckSelection(path); ok {
			fmt.Fprintln(out, docs.Uploading.Text)
		}
		return report(out, manager.Upload(ctx, path))

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(out)
		yes := fs.Bool("yes", false, "skip the confirmation question")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(out, "usage: ragconsole docs delete [-yes] <id>")
			return 2
		}
		confirm := promptConfirm(in, out)
		if *yes {
			confirm = docs.Confirmed
		}
		outcome := manager.Delete(ctx, fs.Arg(0), confirm)
		if outcome.Declined {
			fmt.Fprintln(out, "Cancelled.")
			return 0
		}
		return report(out, outcome)

	default:
		fmt.Fprintf(out, "unknown docs command %q\n", args[0])
		return 2
	}
}

func report(out io.Writer, outcome docs.Outcome) int {
	fmt.Fprintln(out, outcome.Status.Text)
	if outcome.Listing != nil {
		printListing(out, *outcome.Listing)
	}
	if outcome.Status.Kind == docs.StatusError {
		return 1
	}
	return 0
}

func printListing(out io.Writer, listing docs.Listing) {
	if notice := listing.Notice(); notice != "" {
		fmt.Fprintln(out, notice)
		return
	}
	for _, entry := range listing.Entries() {
		fmt.Fprintf(out, "%s  %s\n    %s\n", entry.ID, entry.Name, entry.Meta)
	}
}

// promptConfirm asks on out and reads a y/yes answer from in.
func promptConfirm(in io.Reader, out io.Writer) docs.Confirmer {
	return func(question string) bool {
		fmt.Fprintf(out, "%s [y/N] ", question)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
