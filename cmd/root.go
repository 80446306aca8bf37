// Package cmd implements the CLI command structure for aitodo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"aitodo/internal/config"
	"aitodo/internal/logging"
	"aitodo/internal/storage"
	"aitodo/internal/task"
	"aitodo/internal/theme"
	"aitodo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the aitodo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("aitodo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	logger := logging.New(os.Stderr, cfg)

	// Default to the TUI when no subcommand is given.
	subcommand := "tui"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "tui":
		return ui.Run(ctx, newStore(cfg, logger))
	case "add":
		return addCommand(newStore(cfg, logger), os.Stdout, remaining)
	case "ls", "list":
		return lsCommand(newStore(cfg, logger), os.Stdout, remaining)
	case "toggle", "done":
		return toggleCommand(newStore(cfg, logger), os.Stdout, remaining)
	case "rm", "delete":
		return rmCommand(newStore(cfg, logger), os.Stdout, remaining)
	case "clear":
		return clearCommand(newStore(cfg, logger), os.Stdout)
	case "theme":
		return themeCommand(newStore(cfg, logger), os.Stdout, remaining)
	case "doctor":
		return doctorCommand(cfg, os.Stdout)
	case "version", "--version", "-v":
		return versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newStore opens durable storage and rehydrates the task store from it.
// An unavailable data directory degrades to in-memory state: the
// session still works, only durability is lost.
func newStore(cfg *config.Config, logger *log.Logger) *task.Store {
	kv, err := storage.NewDir(cfg.DataDir)
	if err != nil {
		logger.Warn("data dir unavailable, state will not persist", "dir", cfg.DataDir, "err", err)
		return task.New(storage.NewMem(), task.WithLogger(logger))
	}
	return task.New(kv, task.WithLogger(logger))
}

func addCommand(st *task.Store, w io.Writer, args []string) error {
	text := strings.Join(args, " ")
	t, ok := st.Add(text)
	if !ok {
		// Empty submissions are rejected without error.
		return nil
	}
	fmt.Fprintf(w, "Added %s  %s\n", shortID(t.ID), t.Text)
	return nil
}

func lsCommand(st *task.Store, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("aitodo ls", flag.ContinueOnError)
	filterArg := fs.String("filter", string(task.FilterAll), "Filter (all|active|completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, ok := task.ParseFilter(*filterArg)
	if !ok {
		return fmt.Errorf("invalid filter %q (expected all|active|completed)", *filterArg)
	}
	st.SetFilter(f)

	for _, t := range st.Filtered() {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s  %s\n", box, shortID(t.ID), t.Text)
	}
	fmt.Fprintf(w, "%d remaining\n", st.Remaining())
	return nil
}

func toggleCommand(st *task.Store, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: aitodo toggle <id>")
	}
	id, err := resolveID(st.Tasks(), args[0])
	if err != nil {
		return err
	}
	st.Toggle(id)
	fmt.Fprintf(w, "Toggled %s\n", shortID(id))
	return nil
}

func rmCommand(st *task.Store, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: aitodo rm <id>")
	}
	id, err := resolveID(st.Tasks(), args[0])
	if err != nil {
		return err
	}
	st.Delete(id)
	fmt.Fprintf(w, "Deleted %s\n", shortID(id))
	return nil
}

func clearCommand(st *task.Store, w io.Writer) error {
	before := len(st.Tasks())
	st.ClearCompleted()
	fmt.Fprintf(w, "Cleared %d completed task(s)\n", before-len(st.Tasks()))
	return nil
}

func themeCommand(st *task.Store, w io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(w, st.Theme())
		return nil
	}
	switch args[0] {
	case "toggle":
		st.ToggleTheme()
	default:
		t, ok := theme.Parse(args[0])
		if !ok {
			return fmt.Errorf("invalid theme %q (expected dark|light|toggle)", args[0])
		}
		st.SetTheme(t)
	}
	fmt.Fprintln(w, st.Theme())
	return nil
}

// resolveID maps a full id or an unambiguous id prefix to a task id.
// Resolution is a CLI convenience; the store itself only works with
// full ids and ignores unknown ones.
func resolveID(tasks []task.Task, ref string) (string, error) {
	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous id %q matches %d tasks", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "aitodo %s\n", Version)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `aitodo - a terminal task list

Usage:
  aitodo [command] [flags]

Commands:
  tui               Interactive task list (default)
  add <text>        Add a task
  ls [-filter f]    List tasks (all|active|completed)
  toggle <id>       Toggle a task done/undone
  rm <id>           Delete a task
  clear             Remove all completed tasks
  theme [value]     Show or set theme (dark|light|toggle)
  doctor            Check config and stored state
  version           Show version

Flags:
  -data-dir dir     Directory for persisted state (default ~/.aitodo)
  -log-level level  Log level (debug|info|warn|error)
  -log-format fmt   Log format (text|json)
  -h, -help         Show help
  -v, -version      Show version
`)
}
