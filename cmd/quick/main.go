// Command quick is a small note-taking tool.
//
//	quick add "your note"
//	quick list
//	quick clear
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/notes"
)

func usage() {
	cli.ColorPrintLn(cli.Bold, "Quick Notes - Fast command-line note-taking")
	fmt.Println("\nUsage:")
	fmt.Println(`  quick add "your note"  - Add a note quickly`)
	fmt.Println("  quick list             - List all notes")
	fmt.Println("  quick clear            - Clear all notes")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
}

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	file := flag.String("file", "", "Notes file (overrides notes.path)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	cfg, log, err := cli.Bootstrap(*configFile)
	if err != nil {
		cli.Fail(err)
	}

	path := cfg.Notes.Path
	if *file != "" {
		path = *file
	}
	store := notes.NewStore(path, notes.WithLogger(log))

	if err := run(store, args, os.Stdout); err != nil {
		cli.Fail(err)
	}
}

func run(store *notes.Store, args []string, out io.Writer) error {
	switch strings.ToLower(args[0]) {
	case "add":
		return add(store, strings.Join(args[1:], " "), out)
	case "list":
		return list(store, out)
	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		_, _ = cli.Green.Fprintln(out, "✓ All notes cleared!")
		return nil
	default:
		return fmt.Errorf("unknown command: %s (use: add, list, or clear)", args[0])
	}
}

func add(store *notes.Store, text string, out io.Writer) error {
	if _, err := store.Add(text); err != nil {
		if errors.Is(err, notes.ErrEmptyNote) {
			return errors.New("please provide a note to add")
		}
		return err
	}

	_, _ = cli.Green.Fprintln(out, "✓ Note added quickly!")
	return nil
}

func list(store *notes.Store, out io.Writer) error {
	all, err := store.List()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		_, _ = cli.Yellow.Fprintln(out, "No notes yet. Add one quickly!")
		return nil
	}

	rows := make([][]string, 0, len(all))
	for i, n := range all {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			n.Timestamp.Local().Format(time.DateTime),
			n.Text,
		})
	}

	_, _ = fmt.Fprintln(out)
	_, _ = cli.Bold.Fprintln(out, "Your Quick Notes:")
	return cli.Table(out, []string{"#", "Date", "Note"}, rows)
}
