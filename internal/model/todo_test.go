package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchApply(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := Todo{ID: "a", Title: "Buy milk", Description: "2l", DueDate: due}

	t.Run("title only", func(t *testing.T) {
		got := Patch{Title: Ptr("Buy oat milk")}.Apply(orig)
		want := orig
		want.Title = "Buy oat milk"
		assert.Equal(t, want, got)
	})

	t.Run("completed via edit", func(t *testing.T) {
		got := Patch{Completed: Ptr(true)}.Apply(orig)
		assert.True(t, got.Completed)
		assert.Equal(t, orig.Title, got.Title)
	})

	t.Run("empty patch", func(t *testing.T) {
		p := Patch{}
		assert.True(t, p.Empty())
		assert.Equal(t, orig, p.Apply(orig))
	})
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := Todo{DueDate: now.Add(-time.Hour)}
	assert.True(t, past.Overdue(now))

	past.Completed = true
	assert.False(t, past.Overdue(now))

	assert.False(t, Todo{}.Overdue(now), "no due date is never overdue")
	assert.False(t, Todo{DueDate: now.Add(time.Hour)}.Overdue(now))
}

func TestDateRoundTrip(t *testing.T) {
	plus2 := time.FixedZone("", 2*60*60)
	cases := []time.Time{
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, plus2),
		time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC),
	}
	for _, in := range cases {
		s := FormatDate(in)
		out, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.True(t, in.Equal(out), "%s: got %s", s, out)
		assert.Equal(t, in.Format(DateOnly), out.Format(DateOnly), "calendar day shifted")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-15T00:00:00.000Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	got, err = ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, "", FormatDate(got))

	_, err = ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestParseUserDate(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)

	got, err := ParseUserDate("2024-03-15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), got)

	got, err = ParseUserDate("2024-03-15 09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	today, err := ParseUserDate("today", loc)
	require.NoError(t, err)
	tomorrow, err := ParseUserDate("Tomorrow", loc)
	require.NoError(t, err)
	assert.Equal(t, today.AddDate(0, 0, 1), tomorrow)

	_, err = ParseUserDate("15/03/2024", loc)
	assert.Error(t, err)
}

func TestRecordRoundTrip(t *testing.T) {
	in := Todo{
		ID:          "id-1",
		Title:       "Buy milk",
		DueDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Completed:   true,
		Description: "",
	}
	r := ToRecord(in)
	assert.Equal(t, "2024-03-15T00:00:00Z", r.DueDate)

	out, err := FromRecord(r)
	require.NoError(t, err)
	assert.True(t, in.DueDate.Equal(out.DueDate))
	out.DueDate = in.DueDate
	assert.Equal(t, in, out)

	_, err = FromRecord(Record{ID: "x", DueDate: "garbage"})
	assert.ErrorContains(t, err, "todo x")
}
