package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/iudanet/recordsync/internal/client/sync"
	"github.com/iudanet/recordsync/internal/models"
)

// Format формат вывода команд
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// encode пишет v в json или yaml. Для table возвращает false.
func (c *Cli) encode(v any) (bool, error) {
	switch c.output {
	case FormatJSON:
		enc := json.NewEncoder(c.io)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = c.io.Write(data)
		return true, err
	default:
		return false, nil
	}
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// formatMillis печатает unix millis в UTC
func formatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func (c *Cli) printRecords(records []*models.Record) error {
	if ok, err := c.encode(records); ok {
		return err
	}

	if len(records) == 0 {
		c.io.Println("No records.")
		return nil
	}

	t := newTable(c.io, table.Row{"ID", "Value", "Updated", "Versions"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.Value, formatMillis(r.UpdatedAt), len(r.Versions)})
	}
	t.Render()
	return nil
}

func (c *Cli) printConflicts(conflicts []models.ConflictReport) error {
	if ok, err := c.encode(conflicts); ok {
		return err
	}

	if len(conflicts) == 0 {
		c.io.Println("No conflicts.")
		return nil
	}

	t := newTable(c.io, table.Row{"ID", "Local", "Remote", "Local updated", "Remote updated"})
	for _, cf := range conflicts {
		t.AppendRow(table.Row{
			cf.ID,
			cf.LocalValue,
			cf.RemoteValue,
			formatMillis(cf.LocalUpdatedAt),
			formatMillis(cf.RemoteUpdatedAt),
		})
	}
	t.Render()
	return nil
}

// printFailures печатает ошибки по отдельным записям (только table)
func (c *Cli) printFailures(failures []models.ItemError) {
	if len(failures) == 0 {
		return
	}

	c.io.Printf("%d record(s) failed:\n", len(failures))
	t := newTable(c.io, table.Row{"ID", "Kind", "Message"})
	for _, f := range failures {
		t.AppendRow(table.Row{f.ID, f.Kind, f.Message})
	}
	t.Render()
}

func (c *Cli) printStatus(status *sync.Status) error {
	if ok, err := c.encode(status); ok {
		return err
	}

	c.io.Printf("Records:           %d\n", status.Records)
	c.io.Printf("Pending conflicts: %d\n", status.PendingConflicts)
	c.io.Printf("Last sync:         %s\n", formatMillis(status.LastSync))
	if status.PendingConflicts > 0 {
		c.io.Println("Run 'recordsync resolve' to decide pending conflicts.")
	}
	return nil
}
