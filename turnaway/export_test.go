package turnaway

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(NewMemoryStorage())
	_, err := tr.Add(ctx, sample("Main St", ReasonOverstaffed, CompensationFull, june))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.ExportJSON(ctx, &buf))

	var exported []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "Main St", exported[0]["location"])
	assert.Equal(t, "overstaffed", exported[0]["reason"])
	assert.Equal(t, "full", exported[0]["compensation"])
	assert.NotContains(t, exported[0], "notes", "empty notes are omitted")
}

func TestExportTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTracker(NewMemoryStorage()).ExportText(context.Background(), &buf))

	want := "ShiftSmart Turnaway Report\n" + strings.Repeat("=", 50) + "\n\nNo turnaways recorded.\n"
	assert.Equal(t, want, buf.String())
}

func TestExportText(t *testing.T) {
	records := []Record{
		{
			Date:         time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC),
			Location:     "Depot",
			Reason:       ReasonShiftCancelled,
			Compensation: CompensationPartial,
			Notes:        "called at 6am",
		},
		{
			Date:         time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			Location:     "Main St",
			Reason:       ReasonOverstaffed,
			Compensation: CompensationNone,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, records))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "ShiftSmart Turnaway Report\n"))
	assert.Contains(t, out, "1. Jun 2, 2025 2:05 PM\n   Location: Depot\n   Reason: shift-cancelled\n   Compensation: partial\n   Notes: called at 6am\n")
	assert.Contains(t, out, "2. Jun 1, 2025 8:00 AM\n   Location: Main St\n")
	assert.NotContains(t, out, "Notes: \n")
	assert.True(t, strings.HasSuffix(out, "Total Turnaways: 2\nCompensated: 1\n"))
}
