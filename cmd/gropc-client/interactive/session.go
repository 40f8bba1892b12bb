// Package interactive provides the command loop of gropc-client.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/gropc-project/gropc-go/pkg/interaction"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// Session runs commands against one gateway.
type Session struct {
	client *interaction.Client
	out    io.Writer

	mu   sync.Mutex
	subs map[string]*interaction.Subscription[string]
}

// NewSession creates a session writing its output to out.
func NewSession(client *interaction.Client, out io.Writer) *Session {
	return &Session{
		client: client,
		out:    out,
		subs:   make(map[string]*interaction.Subscription[string]),
	}
}

// Run reads commands with readline until quit, EOF or ctx ends.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gropc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.setOutput(rl.Stdout())
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.output(), "Exiting...")
			return nil
		}
		if !s.Execute(ctx, line) {
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the session should end.
func (s *Session) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "read", "r":
		s.cmdRead(ctx, args)
	case "write", "w":
		s.cmdWrite(ctx, args)
	case "sub", "subscribe":
		s.cmdSubscribe(ctx, args)
	case "unsub", "unsubscribe":
		s.cmdUnsubscribe(args)
	case "mute":
		s.cmdMute(args, true)
	case "unmute":
		s.cmdMute(args, false)
	case "list", "ls":
		s.cmdList()
	case "quit", "exit", "q":
		fmt.Fprintln(s.output(), "Exiting...")
		return false
	default:
		fmt.Fprintf(s.output(), "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

// Close unsubscribes everything.
func (s *Session) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[string]*interaction.Subscription[string])
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.output(), `
gROPC Client Commands:
  read <node>                        - Read a node value
  write <node> <type> <value>        - Write a value (type: int, double, bool, string)
  sub <node> [associated...]         - Subscribe to a node
  unsub <node>                       - End a subscription
  mute <node>                        - Suppress notifications of a subscription
  unmute <node>                      - Resume notifications
  list                               - List subscriptions
  help                               - Show this help
  quit                               - Exit`)
}

func (s *Session) cmdRead(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.output(), "Usage: read <node>")
		return
	}
	value, err := s.client.Read(ctx, args[0])
	if err != nil {
		fmt.Fprintf(s.output(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.output(), "%s = %s\n", args[0], value)
}

func (s *Session) cmdWrite(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.output(), "Usage: write <node> <type> <value>")
		return
	}
	node := args[0]
	kind, err := wire.ParseKind(args[1])
	if err != nil {
		fmt.Fprintf(s.output(), "Error: %v\n", err)
		return
	}
	value := strings.Join(args[2:], " ")

	if err := s.client.WriteText(ctx, node, value, kind); err != nil {
		var we *interaction.WriteError
		if errors.As(err, &we) {
			fmt.Fprintf(s.output(), "Write rejected: %s\n", we.Status)
			return
		}
		fmt.Fprintf(s.output(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.output(), "%s <- %s\n", node, value)
}

func (s *Session) cmdSubscribe(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.output(), "Usage: sub <node> [associated...]")
		return
	}
	node := args[0]

	s.mu.Lock()
	_, exists := s.subs[node]
	s.mu.Unlock()
	if exists {
		fmt.Fprintf(s.output(), "Already subscribed to %s\n", node)
		return
	}

	sub, err := interaction.NewSubscription[string](s.client, node)
	if err != nil {
		fmt.Fprintf(s.output(), "Error: %v\n", err)
		return
	}
	if len(args) > 1 {
		if err := sub.SetAssociated(args[1:]); err != nil {
			fmt.Fprintf(s.output(), "Error: %v\n", err)
			return
		}
	}

	associated := args[1:]
	sub.OnChange(func(r interaction.Response[string]) {
		fmt.Fprintf(s.output(), "[CHANGE] %s = %s%s\n", node, r.Value, formatAssociated(associated, r.Associated))
	})
	sub.OnConnected(func() {
		fmt.Fprintf(s.output(), "[EVENT] Subscribed to %s (%s)\n", node, sub.ID())
	})
	sub.OnConnectionLost(func(attempt int) {
		fmt.Fprintf(s.output(), "[EVENT] Connection to %s lost, reconnecting (attempt %d)\n", node, attempt)
	})
	sub.OnDisconnected(func() {
		fmt.Fprintf(s.output(), "[EVENT] Unsubscribed from %s\n", node)
	})
	sub.OnError(func(err error) {
		fmt.Fprintf(s.output(), "[ERROR] %s: %v\n", node, err)
	})

	// The subscription outlives this command; it ends with unsub or Close.
	if err := sub.Subscribe(context.WithoutCancel(ctx)); err != nil {
		fmt.Fprintf(s.output(), "Error: %v\n", err)
		return
	}

	s.mu.Lock()
	s.subs[node] = sub
	s.mu.Unlock()

	go func() {
		<-sub.Done()
		s.mu.Lock()
		if s.subs[node] == sub {
			delete(s.subs, node)
		}
		s.mu.Unlock()
	}()
}

func (s *Session) cmdUnsubscribe(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.output(), "Usage: unsub <node>")
		return
	}
	s.mu.Lock()
	sub, ok := s.subs[args[0]]
	delete(s.subs, args[0])
	s.mu.Unlock()

	if !ok {
		fmt.Fprintf(s.output(), "Not subscribed to %s\n", args[0])
		return
	}
	sub.Unsubscribe()
}

func (s *Session) cmdMute(args []string, mute bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.output(), "Usage: mute|unmute <node>")
		return
	}
	s.mu.Lock()
	sub, ok := s.subs[args[0]]
	s.mu.Unlock()

	if !ok {
		fmt.Fprintf(s.output(), "Not subscribed to %s\n", args[0])
		return
	}
	if mute {
		sub.Mute()
		fmt.Fprintf(s.output(), "Muted %s\n", args[0])
	} else {
		sub.Unmute()
		fmt.Fprintf(s.output(), "Unmuted %s\n", args[0])
	}
}

func (s *Session) cmdList() {
	s.mu.Lock()
	nodes := make([]string, 0, len(s.subs))
	for node := range s.subs {
		nodes = append(nodes, node)
	}
	subs := make(map[string]*interaction.Subscription[string], len(s.subs))
	for k, v := range s.subs {
		subs[k] = v
	}
	s.mu.Unlock()

	if len(nodes) == 0 {
		fmt.Fprintln(s.output(), "No subscriptions")
		return
	}
	sort.Strings(nodes)
	for _, node := range nodes {
		sub := subs[node]
		muted := ""
		if sub.Muted() {
			muted = " (muted)"
		}
		fmt.Fprintf(s.output(), "  %-30s %-12s %s%s\n", node, sub.State(), sub.ID(), muted)
	}
}

func (s *Session) output() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out
}

func (s *Session) setOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = w
}

func formatAssociated(order []string, values map[string]string) string {
	if len(order) == 0 {
		return ""
	}
	parts := make([]string, 0, len(order))
	for _, node := range order {
		parts = append(parts, node+"="+values[node])
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
