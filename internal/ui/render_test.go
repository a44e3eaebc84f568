package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/model"
)

func init() {
	SetColorMode("never")
	SetTheme("classic")
}

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestDueLabel(t *testing.T) {
	cases := []struct {
		due  time.Time
		want string
	}{
		{time.Time{}, ""},
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "today"},
		{time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), "tomorrow"},
		{time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "overdue 3d"},
		{time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "Wed Mar 20"},
		{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "2025-01-02"},
		{time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC), "tomorrow 09:30"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DueLabel(c.due, now), c.due.String())
	}
}

func TestDueLabelDateOnlyWestOfUTC(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	evening := time.Date(2024, 3, 14, 20, 0, 0, 0, ny)

	assert.Equal(t, "tomorrow", DueLabel(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), evening))
	assert.Equal(t, "today 19:00", DueLabel(time.Date(2024, 3, 15, 0, 0, 0, 0, time.FixedZone("", 0)), evening),
		"a zero offset that is not UTC is an instant")
	assert.Equal(t, "today 19:30", DueLabel(time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC), evening))
}

func TestTodoLines(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Title: "Buy milk", DueDate: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Call mum", Completed: true},
		{ID: "3", Title: strings.Repeat("x", 100)},
	}
	lines := TodoLines(todos, now)
	assert.Equal(t, " 1. ☐ Buy milk  ⏰ overdue 1d", lines[0])
	assert.Equal(t, " 2. ☑ Call mum", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "..."))

	assert.Equal(t, []string{"no todos"}, TodoLines(nil, now))
}

func TestGroupedLinesKeepListIndex(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Title: "a", Completed: true},
		{ID: "2", Title: "b"},
	}
	got := GroupedLines(todos, now)
	assert.Equal(t, []string{
		"Pending",
		" 2. ☐ b",
		"",
		"Done",
		" 1. ☑ a",
	}, got)
}

func TestHeaderAndPanel(t *testing.T) {
	todos := []model.Todo{{Completed: true}, {}, {}, {}}
	h := Header(todos)
	assert.Equal(t, "Todos  ✔ 1  • 3  Total 4", h[0])
	assert.Contains(t, h[1], " 25%")

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "é wide"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "│ ab     │", lines[1])
	assert.Equal(t, "│ é wide │", lines[2])
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "██████████ 100%", ProgressBar(10, 10, 10))
}

func TestOKFail(t *testing.T) {
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ added\n✖ nope\n", buf.String())
}
