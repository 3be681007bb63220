package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"setpriority/internal/models"
	"setpriority/internal/snapshot"
	"setpriority/internal/view"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

// commands run without the TUI
var commands = map[string]func(s *services, args []string, out io.Writer) error{
	"list":    cmdList,
	"export":  cmdExport,
	"diff":    cmdDiff,
	"import":  cmdImport,
	"history": cmdHistory,
}

func runCommand(s *services, name string, args []string, out io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	s.log.Debug("command", zap.String("name", name), zap.Strings("args", args))
	return cmd(s, args, out)
}

func cmdList(s *services, args []string, out io.Writer) error {
	all := false
	for _, a := range args {
		switch a {
		case "-a", "--all":
			all = true
		default:
			return fmt.Errorf("%w: list [--all]", errUsage)
		}
	}

	entries, totals, err := s.entries()
	if err != nil {
		return err
	}
	if !all {
		entries = view.Filter(entries, s.cfg.ViewOptions())
	}

	width := len("NAME")
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	fmt.Fprintf(out, "%-*s  %-12s  %-9s  %s\n", width, "NAME", "PRIORITY", "MANAGED", "ORIGIN")
	for _, e := range entries {
		fmt.Fprintf(out, "%-*s  %-12s  %-9s  %s\n", width, e.Name, e.PriorityLabel(), yesNo(e.Managed), e.Origin)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, totals.Summary())
	return nil
}

// currentSnapshot captures every entry that carries configuration
func currentSnapshot(s *services, reason string) (*snapshot.Snapshot, error) {
	entries, _, err := s.entries()
	if err != nil {
		return nil, err
	}
	configured := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Managed || !e.Priority.IsDefault() {
			configured = append(configured, e)
		}
	}
	return snapshot.Capture(configured, reason), nil
}

func cmdExport(s *services, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: export <file>", errUsage)
	}

	snap, err := currentSnapshot(s, "export")
	if err != nil {
		return err
	}
	if err := snap.Write(args[0]); err != nil {
		return err
	}

	s.log.Info("exported", zap.String("file", args[0]), zap.Int("entries", len(snap.Entries)))
	fmt.Fprintf(out, "Exported %d app(s) to %s\n", len(snap.Entries), args[0])
	return nil
}

func cmdDiff(s *services, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: diff <file>", errUsage)
	}

	incoming, err := snapshot.Read(args[0])
	if err != nil {
		return err
	}
	current, err := currentSnapshot(s, "")
	if err != nil {
		return err
	}

	d := snapshot.Diff(current, incoming)
	if !d.Identical() {
		fmt.Fprint(out, d.Unified())
	}
	fmt.Fprintln(out, d.Summary())
	return nil
}

func cmdImport(s *services, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: import <file>", errUsage)
	}

	incoming, err := snapshot.Read(args[0])
	if err != nil {
		return err
	}

	before, err := currentSnapshot(s, "before importing "+args[0])
	if err != nil {
		return err
	}
	saved, err := s.archive.Save(before, "pre-import")
	if err != nil {
		return fmt.Errorf("snapshot before import: %w", err)
	}

	result, err := snapshot.Apply(s.store, incoming)
	if err != nil {
		return err
	}

	s.log.Info("imported",
		zap.String("file", args[0]),
		zap.Int("applied", result.Applied),
		zap.Strings("skipped", result.Skipped),
	)
	fmt.Fprintf(out, "Imported %d app(s) from %s\n", result.Applied, args[0])
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped: %s\n", strings.Join(result.Skipped, ", "))
	}
	fmt.Fprintf(out, "Previous state saved to %s\n", saved)
	return nil
}

func cmdHistory(s *services, args []string, out io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: history", errUsage)
	}

	commits, err := s.archive.History(20)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Fprintf(out, "No snapshots in %s\n", s.archive.Dir())
		return nil
	}
	for _, c := range commits {
		fmt.Fprintf(out, "%s  %s  %s\n", c.Hash, c.Date, c.Message)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
