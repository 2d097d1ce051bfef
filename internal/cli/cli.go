// Package cli holds the output and startup helpers shared by the binaries
// under cmd/.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/utkarsh5026/asynckit/internal/config"
	"github.com/utkarsh5026/asynckit/internal/logger"
)

var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
)

const rule = "═══════════════════════════════════════════════════════════"

// Bootstrap loads configuration (configFile may be empty) and installs the
// configured slog logger as the default.
func Bootstrap(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	return cfg, log, nil
}

// Fail prints err in red on stderr and exits with status 1.
func Fail(err error) {
	_, _ = Red.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func ColorPrintLn(c *color.Color, a ...any) {
	_, _ = c.Println(a...)
}

func ColorPrintf(c *color.Color, format string, a ...any) {
	_, _ = c.Printf(format, a...)
}

// SectionHeader prints a bold boxed title followed by plain description
// lines.
func SectionHeader(title string, descriptions ...string) {
	fmt.Println()
	ColorPrintLn(Bold, rule)
	ColorPrintLn(Bold, title)
	ColorPrintLn(Bold, rule)
	for _, desc := range descriptions {
		fmt.Println(desc)
	}
	fmt.Println()
}

// Table renders rows under header to w.
func Table(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(toAny(header)...)

	for _, row := range rows {
		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}

	return table.Render()
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
