package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseforge/caseforge/internal/testcase"
)

func TestParseTestData(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"simple pair", "username: alice", "username", "alice", true},
		{"no colon", "just a note", "", "", false},
		{"empty", "", "", "", false},
		{"splits on first colon only", "url: http://example.com", "url", "http://example.com", true},
		{"both sides trimmed", "  key :  value  ", "key", "value", true},
		{"value sanitized", "creds: user|pass", "creds", "user pass", true},
		{"empty key", ": value", "", "value", true},
		{"empty value", "flag:", "flag", "", true},
		{"long value truncated", "k: " + strings.Repeat("v", 60), "k", strings.Repeat("v", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := ParseTestData(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestBuildExampleTable(t *testing.T) {
	cases := []testcase.TestCase{
		{
			ID:       "TC-1",
			Name:     "User Login",
			TestType: "functional",
			Priority: "high",
			Steps: []testcase.Step{
				{Step: "open page", TestData: "username: alice"},
				{Step: "enter password", TestData: "password: s3cret|x"},
				{Step: "submit", ExpectedResult: "Dashboard is shown"},
			},
		},
		{
			ID:       "TC-2",
			Name:     "Locked Account",
			TestType: "negative",
			Priority: "medium",
			Steps: []testcase.Step{
				{Step: "open page", TestData: "username: mallory"},
				{Step: "submit", ExpectedResult: "Account locked banner"},
			},
		},
	}

	table := BuildExampleTable(cases)

	require.Equal(t,
		[]string{"username", "password", "test_case", "expected_result", "priority", "type"},
		table.Columns(),
		"dynamic columns in first-encounter order, fixed columns last")

	v, ok := table.Cell("username", "TC-1")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok = table.Cell("password", "TC-1")
	assert.True(t, ok)
	assert.Equal(t, "s3cret x", v, "values are sanitized")

	_, ok = table.Cell("password", "TC-2")
	assert.False(t, ok, "TC-2 never set password")

	v, _ = table.Cell("test_case", "TC-2")
	assert.Equal(t, "Locked Account", v)

	v, _ = table.Cell("expected_result", "TC-1")
	assert.Equal(t, "Dashboard is shown", v, "expected_result comes from the last step")

	v, _ = table.Cell("priority", "TC-2")
	assert.Equal(t, "medium", v)

	v, _ = table.Cell("type", "TC-1")
	assert.Equal(t, "functional", v)
}

func TestBuildExampleTableNoSteps(t *testing.T) {
	table := BuildExampleTable([]testcase.TestCase{
		{ID: "TC-1", Name: "Placeholder", TestType: "smoke", Priority: "low"},
	})

	assert.Equal(t, []string{"test_case", "expected_result", "priority", "type"}, table.Columns())

	v, ok := table.Cell("expected_result", "TC-1")
	assert.True(t, ok, "expected_result is populated even without steps")
	assert.Equal(t, "", v)
}

func TestBuildExampleTableLaterStepOverwrites(t *testing.T) {
	table := BuildExampleTable([]testcase.TestCase{
		{
			ID: "TC-1", Name: "Retry",
			Steps: []testcase.Step{
				{Step: "first try", TestData: "attempt: 1"},
				{Step: "second try", TestData: "attempt: 2"},
			},
		},
	})

	v, _ := table.Cell("attempt", "TC-1")
	assert.Equal(t, "2", v)
	assert.Equal(t, "attempt", table.Columns()[0], "column keeps its first position")
}

func TestBuildExampleTableFixedNameCollision(t *testing.T) {
	// A dynamic column named like a fixed one keeps its early position but
	// the fixed value wins.
	table := BuildExampleTable([]testcase.TestCase{
		{
			ID: "TC-1", Name: "Collision", Priority: "high",
			Steps: []testcase.Step{
				{Step: "s", TestData: "priority: from-test-data"},
			},
		},
	})

	require.Equal(t, []string{"priority", "test_case", "expected_result", "type"}, table.Columns())
	v, _ := table.Cell("priority", "TC-1")
	assert.Equal(t, "high", v)
}

func TestBuildExampleTableEmpty(t *testing.T) {
	table := BuildExampleTable(nil)
	assert.True(t, table.Empty())
	assert.Empty(t, table.Columns())
}
