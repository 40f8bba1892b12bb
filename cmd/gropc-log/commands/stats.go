package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gropc-project/gropc-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Operations        map[log.Operation]int
	WriteStatuses     map[string]int
	Clients           map[string]*ClientStats
	Subscriptions     map[string]int
	Notifications     int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ClientStats holds statistics for a single client.
type ClientStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Requests  int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Operations:        make(map[log.Operation]int),
		WriteStatuses:     make(map[string]int),
		Clients:           make(map[string]*ClientStats),
		Subscriptions:     make(map[string]int),
	}
}

// add folds one event into the statistics.
func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.ClientID != "" {
		c, ok := s.Clients[event.ClientID]
		if !ok {
			c = &ClientStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			s.Clients[event.ClientID] = c
		}
		c.Events++
		if event.Timestamp.After(c.LastSeen) {
			c.LastSeen = event.Timestamp
		}
		if event.Message != nil && event.Message.Type == log.MessageTypeRequest {
			c.Requests++
		}
	}

	if msg := event.Message; msg != nil {
		switch msg.Type {
		case log.MessageTypeRequest:
			s.Operations[msg.Operation]++
		case log.MessageTypeResponse:
			if msg.Operation == log.OpWrite && msg.Status != "" {
				s.WriteStatuses[msg.Status]++
			}
		case log.MessageTypeNotification:
			s.Notifications++
			if event.SubscriptionID != "" {
				s.Subscriptions[event.SubscriptionID]++
			}
		}
	}

	if event.Error != nil {
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	if err := forEach(reader, func(event log.Event) error {
		stats.add(event)
		return nil
	}); err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== gROPC Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerRPC, log.LayerSubscription, log.LayerAdapter} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Requests by Operation:")
	for _, op := range []log.Operation{log.OpRead, log.OpWrite, log.OpSubscribe, log.OpUnsubscribe} {
		if count := stats.Operations[op]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.WriteStatuses) > 0 {
		fmt.Fprintln(w, "Write Statuses:")
		for _, status := range sortedKeys(stats.WriteStatuses) {
			fmt.Fprintf(w, "  %-14s %d\n", status+":", stats.WriteStatuses[status])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Notifications: %d across %d subscriptions\n", stats.Notifications, len(stats.Subscriptions))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Clients: %d\n", len(stats.Clients))
	if len(stats.Clients) > 0 {
		ids := make([]string, 0, len(stats.Clients))
		for id := range stats.Clients {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return stats.Clients[ids[i]].FirstSeen.Before(stats.Clients[ids[j]].FirstSeen)
		})

		fmt.Fprintln(w)
		for _, id := range ids {
			c := stats.Clients[id]
			duration := c.LastSeen.Sub(c.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, %d requests, duration %s\n", shorten(id), c.Events, c.Requests, duration)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
