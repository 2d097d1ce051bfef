// Command turnaway logs shifts where a worker showed up and was sent home.
//
//	turnaway add -location "Main St" -reason overstaffed -comp partial
//	turnaway list
//	turnaway delete <id>
//	turnaway clear
//	turnaway stats
//	turnaway export json|text [-o file]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis"
	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/internal/config"
	"github.com/utkarsh5026/asynckit/textutil"
	"github.com/utkarsh5026/asynckit/turnaway"
)

const listDateLayout = "Jan 2, 2006 3:04 PM"

func usage() {
	cli.ColorPrintLn(cli.Bold, "ShiftSmart Turnaway Tracker")
	fmt.Println("\nUsage:")
	fmt.Println("  turnaway [flags] add -location L -reason R [-comp C] [-date D] [-notes N]")
	fmt.Println("  turnaway [flags] list")
	fmt.Println("  turnaway [flags] delete <id>")
	fmt.Println("  turnaway [flags] clear")
	fmt.Println("  turnaway [flags] stats")
	fmt.Println("  turnaway [flags] export json|text [-o file]")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
}

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	backend := flag.String("backend", "", "Storage backend: memory, file or redis (overrides turnaway.backend)")
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
	if *backend != "" {
		cfg.Turnaway.Backend = *backend
	}

	storage, closeFn, err := openStorage(cfg.Turnaway)
	if err != nil {
		cli.Fail(err)
	}
	defer closeFn()

	tracker := turnaway.NewTracker(storage, turnaway.WithLogger(log))
	if err := run(context.Background(), tracker, args, os.Stdout); err != nil {
		closeFn()
		cli.Fail(err)
	}
}

// openStorage builds the configured backend. The returned func releases
// any connection it holds.
func openStorage(cfg config.TurnawayConfig) (turnaway.Storage, func(), error) {
	switch cfg.Backend {
	case "memory":
		return turnaway.NewMemoryStorage(), func() {}, nil
	case "file":
		if cfg.Path == "" {
			return nil, nil, errors.New("turnaway.path is required for the file backend")
		}
		return turnaway.NewFileStorage(cfg.Path), func() {}, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nil, errors.New("turnaway.redis_addr is required for the redis backend")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping().Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return turnaway.NewRedisStorage(client, cfg.RedisKey), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown turnaway backend %q", cfg.Backend)
	}
}

func run(ctx context.Context, tracker *turnaway.Tracker, args []string, out io.Writer) error {
	switch strings.ToLower(args[0]) {
	case "add":
		return add(ctx, tracker, args[1:], out)
	case "list":
		return list(ctx, tracker, out)
	case "delete":
		if len(args) < 2 {
			return errors.New("please provide the id of the turnaway to delete")
		}
		if err := tracker.Delete(ctx, args[1]); err != nil {
			return err
		}
		_, _ = cli.Green.Fprintln(out, "✓ Turnaway deleted")
		return nil
	case "clear":
		if err := tracker.Clear(ctx); err != nil {
			return err
		}
		_, _ = cli.Green.Fprintln(out, "✓ All turnaways cleared")
		return nil
	case "stats":
		s := tracker.Stats(ctx, time.Now())
		_, _ = cli.Bold.Fprintln(out, "Turnaway Stats")
		_, _ = fmt.Fprintf(out, "  Total:       %d\n", s.Total)
		_, _ = fmt.Fprintf(out, "  This Month:  %d\n", s.ThisMonth)
		_, _ = fmt.Fprintf(out, "  Compensated: %d\n", s.Compensated)
		return nil
	case "export":
		return export(ctx, tracker, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q (use add, list, delete, clear, stats or export)", args[0])
	}
}

func add(ctx context.Context, tracker *turnaway.Tracker, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(out)
	location := fs.String("location", "", "Where the shift was")
	reason := fs.String("reason", "", "Why you were turned away: "+joinCodes(turnaway.Reasons()))
	comp := fs.String("comp", string(turnaway.CompensationNone), "Compensation received: "+joinCodes(turnaway.Compensations()))
	date := fs.String("date", "", "When it happened (2006-01-02 15:04 or RFC 3339; default now)")
	notes := fs.String("notes", "", "Anything else worth remembering")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := turnaway.Record{
		Location:     *location,
		Reason:       turnaway.Reason(*reason),
		Compensation: turnaway.Compensation(*comp),
		Notes:        *notes,
	}
	if *date != "" {
		d, err := parseDate(*date)
		if err != nil {
			return err
		}
		r.Date = d
	}

	added, err := tracker.Add(ctx, r)
	if err != nil {
		return err
	}

	_, _ = cli.Green.Fprintf(out, "✓ Turnaway logged (%s)\n", added.ID)
	return nil
}

func list(ctx context.Context, tracker *turnaway.Tracker, out io.Writer) error {
	records := tracker.List(ctx)
	if len(records) == 0 {
		_, _ = cli.Yellow.Fprintln(out, "No turnaways recorded.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.ID,
			r.Date.Local().Format(listDateLayout),
			r.Location,
			r.Reason.Label(),
			r.Compensation.Label(),
			textutil.Truncate(strings.TrimSpace(r.Notes), 40),
		})
	}

	return cli.Table(out, []string{"#", "ID", "Date", "Location", "Reason", "Compensation", "Notes"}, rows)
}

func export(ctx context.Context, tracker *turnaway.Tracker, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("please choose an export format: json or text")
	}
	format := strings.ToLower(args[0])

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(out)
	file := fs.String("o", "", "Output file (- for stdout)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var write func(context.Context, io.Writer) error
	name := *file
	switch format {
	case "json":
		write = tracker.ExportJSON
		if name == "" {
			name = turnaway.JSONExportName
		}
	case "text", "txt":
		write = tracker.ExportText
		if name == "" {
			name = turnaway.TextExportName
		}
	default:
		return fmt.Errorf("unknown export format %q", args[0])
	}

	if name == "-" {
		return write(ctx, out)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	_, _ = cli.Green.Fprintf(out, "✓ Exported to %s\n", name)
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func joinCodes[T ~string](codes []T) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
