package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanLocationName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Uddevalla Kampenhof (Uddevalla kn)", "Uddevalla Kampenhof"},
		{"Stockholm Centralstation", "Stockholm Centralstation"},
		{"Lund C (Lund kn) (spår 2)", "Lund C"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, CleanLocationName(test.input))
	}
}

func TestFormatWait(t *testing.T) {
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		departure time.Time
		expected  string
	}{
		{now.Add(30 * time.Second), "Nu"},
		{now.Add(-5 * time.Minute), "Nu"},
		{now.Add(12 * time.Minute), "12m"},
		{now.Add(65 * time.Minute), "1h5m"},
		{now.Add(3*time.Hour + 59*time.Minute + 30*time.Second), "3h59m"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatWait(test.departure, now))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h3m", FormatDuration(2*time.Hour+3*time.Minute))
	assert.Equal(t, "0h0m", FormatDuration(-time.Minute))
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}
	InPlaceFilter(&values, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6}, values)
}

func TestEnvOrDefault(t *testing.T) {
	env := map[string]string{"SET": "value", "NUMBER": "12", "BROKEN": "twelve"}

	assert.Equal(t, "value", EnvOrDefault(env, "SET", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault(env, "MISSING", "fallback"))
	assert.Equal(t, 12, EnvIntOrDefault(env, "NUMBER", 1))
	assert.Equal(t, 1, EnvIntOrDefault(env, "BROKEN", 1))
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", TrimString("abcdef", 3))
	assert.Equal(t, "ab", TrimString("ab", 3))
}
