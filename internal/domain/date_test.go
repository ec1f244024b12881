package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-10-28")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.October, Day: 28}, d)
	assert.Equal(t, "2024-10-28", d.String())

	_, err = ParseDate("28/10/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_Before(t *testing.T) {
	a := Date{Year: 2024, Month: 9, Day: 30}
	b := Date{Year: 2024, Month: 10, Day: 1}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestDate_JSONIsCalendarString(t *testing.T) {
	task := validTask()
	due := Date{Year: 2024, Month: 11, Day: 12}
	task.DueDate = &due

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":"2024-11-12"`)

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.DueDate)
	assert.Equal(t, due, *back.DueDate)
}
