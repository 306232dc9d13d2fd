package synth

import (
	"strings"

	"github.com/caseforge/caseforge/internal/testcase"
)

// Fixed columns appended after the dynamic test-data columns.
const (
	colTestCase       = "test_case"
	colExpectedResult = "expected_result"
	colPriority       = "priority"
	colType           = "type"
)

// ParseTestData splits a "key: value" pair on the first colon. Both sides
// are trimmed and sanitized. ok is false when the text carries no colon.
func ParseTestData(s string) (key, value string, ok bool) {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return "", "", false
	}
	key = Clean(strings.TrimSpace(s[:idx]))
	value = Clean(strings.TrimSpace(s[idx+1:]))
	return key, value, true
}

// ExampleTable accumulates Examples columns in first-encounter order.
type ExampleTable struct {
	columns []string
	values  map[string]map[string]string // column -> test case ID -> value
}

func (t *ExampleTable) set(column, caseID, value string) {
	if t.values == nil {
		t.values = make(map[string]map[string]string)
	}
	if _, seen := t.values[column]; !seen {
		t.columns = append(t.columns, column)
		t.values[column] = make(map[string]string)
	}
	t.values[column][caseID] = value
}

// Columns returns the header order: dynamic columns first, fixed columns
// last.
func (t *ExampleTable) Columns() []string {
	return t.columns
}

// Cell returns the value for a column and test case, and whether that cell
// was populated. Unpopulated cells render as "-".
func (t *ExampleTable) Cell(column, caseID string) (string, bool) {
	value, ok := t.values[column][caseID]
	return value, ok
}

// Empty reports whether the table has no columns.
func (t *ExampleTable) Empty() bool {
	return len(t.columns) == 0
}

// BuildExampleTable collects "key: value" test data from every step of
// every test case, then appends the fixed columns for each case. Later
// steps reusing a key overwrite the earlier value.
func BuildExampleTable(cases []testcase.TestCase) *ExampleTable {
	table := &ExampleTable{}

	for _, tc := range cases {
		for _, s := range tc.Steps {
			if key, value, ok := ParseTestData(s.TestData); ok {
				table.set(key, tc.ID, value)
			}
		}
	}

	for _, tc := range cases {
		table.set(colTestCase, tc.ID, Clean(tc.Name))

		expected := ""
		if n := len(tc.Steps); n > 0 {
			expected = Clean(tc.Steps[n-1].ExpectedResult)
		}
		table.set(colExpectedResult, tc.ID, expected)

		table.set(colPriority, tc.ID, tc.Priority)
		table.set(colType, tc.ID, tc.TestType)
	}

	return table
}
