package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gropc-project/gropc-go/pkg/log"
)

// RunExport writes the events matching opts to w as JSON lines or CSV.
func RunExport(path, format string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	var write func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		write = exportJSONL
	case "csv":
		write = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	return write(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return forEach(reader, func(event log.Event) error {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "client_id", "direction", "layer", "category", "type", "operation", "subscription_id", "node", "value", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return forEach(reader, func(event log.Event) error {
		var op, value, status string
		if msg := event.Message; msg != nil {
			op = msg.Operation.String()
			value = printable(msg.Value)
			status = msg.Status
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.ClientID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			eventType(event),
			op,
			event.SubscriptionID,
			event.Node,
			value,
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
}
