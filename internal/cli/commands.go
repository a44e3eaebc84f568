package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func newAddCmd(app *App) *cobra.Command {
	var desc, due string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: tada add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			dueAt, err := model.ParseUserDate(due, app.Loc)
			if err != nil {
				return usagef("add: %v", err)
			}
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			td := s.Add(model.Draft{Title: title, Description: strings.TrimSpace(desc), DueDate: dueAt})
			ui.OK(app.Out, fmt.Sprintf("added #%d %s", len(s.Todos()), shortID(td.ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().StringVar(&due, "due", "today", "due date: YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", today, tomorrow or \"\"")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "tada ls"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			todos := s.Todos()
			if asJSON {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(model.ToRecords(todos))
			}

			now := app.Now()
			lines := ui.Header(todos)
			lines = append(lines, "")
			if app.cfg.UI.Group {
				lines = append(lines, ui.GroupedLines(todos, now)...)
			} else {
				lines = append(lines, ui.TodoLines(todos, now)...)
			}
			lines = append(lines, "")
			lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `tada add \"Buy milk\" --due tomorrow`"))
			ui.Panel(app.Out, lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print todos as JSON")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show every field of one item",
		Args:  exactArgs(1, "tada show <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			idx, td, err := resolve(s.Todos(), args[0])
			if err != nil {
				return err
			}
			t := ui.Current()
			status := ui.C(t.Pending, "pending")
			if td.Completed {
				status = ui.C(t.Success, "done")
			}
			due := "(none)"
			if !td.DueDate.IsZero() {
				due = td.DueDate.In(app.Loc).Format("2006-01-02 15:04 MST") + "  " + ui.DueLabel(td.DueDate, app.Now())
			}
			desc := td.Description
			if desc == "" {
				desc = ui.C(t.Muted, "(empty)")
			}
			ui.Panel(app.Out, []string{
				ui.C(t.Title, fmt.Sprintf("#%d %s", idx+1, td.Title)),
				"",
				"id:          " + td.ID,
				"status:      " + status,
				"due:         " + due,
				"description: " + desc,
			})
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle done for an item (1-based index or id)",
		Args:  exactArgs(1, "tada done <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			_, td, err := resolve(s.Todos(), args[0])
			if err != nil {
				return err
			}
			s.Toggle(td.ID)
			ui.OK(app.Out, "toggled")
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove"},
		Short:   "Remove an item (1-based index or id)",
		Args:    exactArgs(1, "tada rm <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			_, td, err := resolve(s.Todos(), args[0])
			if err != nil {
				return err
			}
			s.Remove(td.ID)
			ui.OK(app.Out, "removed")
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title, desc, due string
	var done bool
	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change the title, description, due date or done flag of an item",
		Args:  exactArgs(1, "tada edit <index|id> [--title T] [--desc D] [--due DATE] [--done=BOOL]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			var p model.Patch
			if fs.Changed("title") {
				t := strings.TrimSpace(title)
				if t == "" {
					return usagef("edit: empty title")
				}
				p.Title = &t
			}
			if fs.Changed("desc") {
				d := strings.TrimSpace(desc)
				p.Description = &d
			}
			if fs.Changed("due") {
				d, err := model.ParseUserDate(due, app.Loc)
				if err != nil {
					return usagef("edit: %v", err)
				}
				p.DueDate = &d
			}
			if fs.Changed("done") {
				p.Completed = &done
			}
			if p.Empty() {
				return usagef("edit: nothing to change (use --title, --desc, --due or --done)")
			}

			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			_, td, err := resolve(s.Todos(), args[0])
			if err != nil {
				return err
			}
			s.Edit(td.ID, p)
			ui.OK(app.Out, "updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (\"\" clears it)")
	cmd.Flags().BoolVar(&done, "done", false, "mark done (--done=false reopens)")
	return cmd
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive list (space toggle, a add, e edit, d delete, q quit)",
		Args:  exactArgs(0, "tada ui"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			if err := tui.Run(s, tui.WithClock(app.Now), tui.WithLocation(app.Loc)); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
