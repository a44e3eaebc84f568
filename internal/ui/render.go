package ui

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

const maxTitle = 80

// Stats counts done and pending todos.
func Stats(todos []model.Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Header is the title line plus progress bar shown above a listing.
func Header(todos []model.Todo) []string {
	t := Current()
	d, p := Stats(todos)
	return []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			C(t.Title, "Todos"),
			C(t.Success, t.SymDone), d,
			C(t.Pending, t.SymUnchecked), p,
			C(t.Accent, "Total"), len(todos),
		),
		C(t.Muted, ProgressBar(d, d+p, 28)),
	}
}

// DueLabel renders a due date relative to now: "today", "tomorrow",
// "overdue 3d" or a plain date.
func DueLabel(due, now time.Time) string {
	if due.IsZero() {
		return ""
	}
	local := due.In(now.Location())
	if dateOnly(due) {
		y, m, d := due.Date()
		local = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	days := dayDiff(now, local)
	var s string
	switch {
	case days == 0:
		s = "today"
	case days == 1:
		s = "tomorrow"
	case days < 0:
		s = fmt.Sprintf("overdue %dd", -days)
	default:
		s = local.Format("Mon Jan 2")
		if local.Year() != now.Year() {
			s = local.Format(model.DateOnly)
		}
	}
	if local.Hour() != 0 || local.Minute() != 0 {
		s += local.Format(" 15:04")
	}
	return s
}

// dateOnly reports a bare calendar date as stored: midnight UTC.
func dateOnly(t time.Time) bool {
	return t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func dayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// TodoLine renders one todo. index is the 1-based position in the full list.
func TodoLine(index int, td model.Todo, now time.Time) string {
	t := Current()
	box, color := t.BoxUnchecked, t.Muted
	title := td.Title
	if len([]rune(title)) > maxTitle {
		title = string([]rune(title)[:maxTitle-3]) + "..."
	}
	if td.Completed {
		box, color = t.BoxChecked, t.Success
		title = C(t.Done, title)
	}
	line := fmt.Sprintf("%s %s %s", C(dim, fmt.Sprintf("%2d.", index)), C(color, box), title)
	if due := DueLabel(td.DueDate, now); due != "" {
		dueColor := t.Muted
		if td.Overdue(now) {
			dueColor = t.Error
		}
		line += "  " + C(dueColor, t.SymDue+" "+due)
	}
	return line
}

// TodoLines renders the list flat, in insertion order.
func TodoLines(todos []model.Todo, now time.Time) []string {
	if len(todos) == 0 {
		return []string{C(Current().Muted, "no todos")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		out = append(out, TodoLine(i+1, td, now))
	}
	return out
}

// GroupedLines splits pending from done but keeps each todo's list index,
// so the numbers still work with `tada done <n>`.
func GroupedLines(todos []model.Todo, now time.Time) []string {
	t := Current()
	var pend, done []string
	for i, td := range todos {
		if td.Completed {
			done = append(done, TodoLine(i+1, td, now))
		} else {
			pend = append(pend, TodoLine(i+1, td, now))
		}
	}
	section := func(name string, lines []string) []string {
		out := []string{C(t.Accent, name)}
		if len(lines) == 0 {
			return append(out, C(t.Muted, "(none)"))
		}
		return append(out, lines...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
