package support

import (
	"testing"
)

func TestParseJSON_ValidJSON(t *testing.T) {
	jsonStr := `{"featureFile": "Feature: X\n", "stats": {"lines": 2}}`
	result := ParseJSON(jsonStr)

	if !result.Valid() {
		t.Errorf("Expected valid JSON, got error: %s", result.Error())
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	jsonStr := `{not valid json}`
	result := ParseJSON(jsonStr)

	if result.Valid() {
		t.Error("Expected invalid JSON, but Valid() returned true")
	}
	if result.Error() == "" {
		t.Error("Expected error message, got empty string")
	}
}

func TestJSONResult_GetString(t *testing.T) {
	jsonStr := `{"metric_name": "faithfulness", "explanation": "grounded in context"}`
	result := ParseJSON(jsonStr)

	if got := result.GetString("metric_name"); got != "faithfulness" {
		t.Errorf("GetString('metric_name') = %q, want %q", got, "faithfulness")
	}

	if got := result.GetString("explanation"); got != "grounded in context" {
		t.Errorf("GetString('explanation') = %q, want %q", got, "grounded in context")
	}

	if got := result.GetString("nonexistent"); got != "" {
		t.Errorf("GetString('nonexistent') = %q, want empty string", got)
	}
}

func TestJSONResult_GetInt(t *testing.T) {
	jsonStr := `{"lines": 12, "examplesCount": 0}`
	result := ParseJSON(jsonStr)

	if got := result.GetInt("lines"); got != 12 {
		t.Errorf("GetInt('lines') = %d, want %d", got, 12)
	}

	if got := result.GetInt("examplesCount"); got != 0 {
		t.Errorf("GetInt('examplesCount') = %d, want %d", got, 0)
	}

	if got := result.GetInt("nonexistent"); got != 0 {
		t.Errorf("GetInt('nonexistent') = %d, want %d", got, 0)
	}
}

func TestJSONResult_GetFloat(t *testing.T) {
	jsonStr := `{"score": 0.92}`
	result := ParseJSON(jsonStr)

	if got := result.GetFloat("score"); got != 0.92 {
		t.Errorf("GetFloat('score') = %v, want %v", got, 0.92)
	}

	if got := result.GetFloat("nonexistent"); got != 0 {
		t.Errorf("GetFloat('nonexistent') = %v, want %v", got, 0.0)
	}
}

func TestJSONResult_GetBool(t *testing.T) {
	jsonStr := `{"healthy": true, "degraded": false}`
	result := ParseJSON(jsonStr)

	if got := result.GetBool("healthy"); got != true {
		t.Errorf("GetBool('healthy') = %v, want %v", got, true)
	}

	if got := result.GetBool("degraded"); got != false {
		t.Errorf("GetBool('degraded') = %v, want %v", got, false)
	}

	if got := result.GetBool("nonexistent"); got != false {
		t.Errorf("GetBool('nonexistent') = %v, want %v", got, false)
	}
}

func TestJSONResult_GetArray(t *testing.T) {
	jsonStr := `{"metrics": ["faithfulness", "hallucination", "pii_leakage"]}`
	result := ParseJSON(jsonStr)

	arr := result.GetArray("metrics")
	if arr == nil {
		t.Fatal("GetArray('metrics') returned nil")
	}

	if len(arr) != 3 {
		t.Errorf("len(metrics) = %d, want %d", len(arr), 3)
	}

	if arr[0] != "faithfulness" {
		t.Errorf("metrics[0] = %v, want %q", arr[0], "faithfulness")
	}
}

func TestJSONResult_GetNestedPath(t *testing.T) {
	jsonStr := `{
		"stats": {
			"lines": 12,
			"nested": {
				"deep": "value"
			}
		}
	}`
	result := ParseJSON(jsonStr)

	if got := result.GetInt("stats.lines"); got != 12 {
		t.Errorf("GetInt('stats.lines') = %d, want %d", got, 12)
	}

	if got := result.GetString("stats.nested.deep"); got != "value" {
		t.Errorf("GetString('stats.nested.deep') = %q, want %q", got, "value")
	}
}

func TestJSONResult_GetArrayIndex(t *testing.T) {
	jsonStr := `{
		"results": [
			{"metric_name": "faithfulness", "score": 0.9},
			{"metric_name": "hallucination", "score": 0.1},
			{"metric_name": "pii_leakage", "score": 0.0}
		]
	}`
	result := ParseJSON(jsonStr)

	if got := result.GetString("results[0].metric_name"); got != "faithfulness" {
		t.Errorf("GetString('results[0].metric_name') = %q, want %q", got, "faithfulness")
	}

	if got := result.GetFloat("results[1].score"); got != 0.1 {
		t.Errorf("GetFloat('results[1].score') = %v, want %v", got, 0.1)
	}

	if got := result.GetString("results[2].metric_name"); got != "pii_leakage" {
		t.Errorf("GetString('results[2].metric_name') = %q, want %q", got, "pii_leakage")
	}

	// Out of bounds
	if got := result.GetString("results[10].metric_name"); got != "" {
		t.Errorf("GetString('results[10].metric_name') = %q, want empty string", got)
	}
}

func TestJSONResult_ArrayLen(t *testing.T) {
	jsonStr := `{"results": [1, 2, 3], "empty": []}`
	result := ParseJSON(jsonStr)

	if got := result.ArrayLen("results"); got != 3 {
		t.Errorf("ArrayLen('results') = %d, want %d", got, 3)
	}

	if got := result.ArrayLen("empty"); got != 0 {
		t.Errorf("ArrayLen('empty') = %d, want %d", got, 0)
	}

	if got := result.ArrayLen("nonexistent"); got != -1 {
		t.Errorf("ArrayLen('nonexistent') = %d, want %d", got, -1)
	}
}

func TestJSONResult_Has(t *testing.T) {
	jsonStr := `{"metric_name": "hallucination", "score": null, "stats": {"lines": 4}}`
	result := ParseJSON(jsonStr)

	if !result.Has("metric_name") {
		t.Error("Has('metric_name') = false, want true")
	}

	if !result.Has("score") {
		t.Error("Has('score') = false, want true (even for null)")
	}

	if !result.Has("stats.lines") {
		t.Error("Has('stats.lines') = false, want true")
	}

	if result.Has("nonexistent") {
		t.Error("Has('nonexistent') = true, want false")
	}
}

func TestJSONResult_Equals(t *testing.T) {
	jsonStr := `{"metric_name": "faithfulness", "lines": 42, "healthy": true}`
	result := ParseJSON(jsonStr)

	if !result.Equals("metric_name", "faithfulness") {
		t.Error("Equals('metric_name', 'faithfulness') = false, want true")
	}

	if !result.Equals("lines", 42) {
		t.Error("Equals('lines', 42) = false, want true")
	}

	if !result.Equals("healthy", "true") {
		t.Error("Equals('healthy', 'true') = false, want true")
	}

	if result.Equals("metric_name", "wrong") {
		t.Error("Equals('metric_name', 'wrong') = true, want false")
	}
}

func TestJSONResult_IsNull(t *testing.T) {
	jsonStr := `{"score": null, "explanation": "ok"}`
	result := ParseJSON(jsonStr)

	if !result.IsNull("score") {
		t.Error("IsNull('score') = false, want true")
	}

	if result.IsNull("explanation") {
		t.Error("IsNull('explanation') = true, want false")
	}

	if result.IsNull("nonexistent") {
		t.Error("IsNull('nonexistent') = true, want false (doesn't exist)")
	}
}

func TestJSONResult_IsArray(t *testing.T) {
	jsonStr := `{"results": [], "lines": 0}`
	result := ParseJSON(jsonStr)

	if !result.IsArray("results") {
		t.Error("IsArray('results') = false, want true")
	}

	if result.IsArray("lines") {
		t.Error("IsArray('lines') = true, want false")
	}
}

func TestJSONResult_ComplexPath(t *testing.T) {
	jsonStr := `{
		"data": {
			"items": [
				{"name": "first", "tags": ["a", "b"]},
				{"name": "second", "tags": ["c", "d"]}
			]
		}
	}`
	result := ParseJSON(jsonStr)

	if got := result.GetString("data.items[0].name"); got != "first" {
		t.Errorf("GetString('data.items[0].name') = %q, want %q", got, "first")
	}

	if got := result.GetString("data.items[1].tags[0]"); got != "c" {
		t.Errorf("GetString('data.items[1].tags[0]') = %q, want %q", got, "c")
	}

	if got := result.ArrayLen("data.items[0].tags"); got != 2 {
		t.Errorf("ArrayLen('data.items[0].tags') = %d, want %d", got, 2)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
	}{
		{"results", []string{"results"}},
		{"stats.lines", []string{"stats", "lines"}},
		{"results[0]", []string{"results", "[0]"}},
		{"results[0].score", []string{"results", "[0]", "score"}},
		{"data.items[0].name", []string{"data", "items", "[0]", "name"}},
		{"[0]", []string{"[0]"}},
		{"a.b.c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		got := parsePath(tt.path)
		if len(got) != len(tt.expected) {
			t.Errorf("parsePath(%q) = %v, want %v", tt.path, got, tt.expected)
			continue
		}
		for i, part := range got {
			if part != tt.expected[i] {
				t.Errorf("parsePath(%q)[%d] = %q, want %q", tt.path, i, part, tt.expected[i])
			}
		}
	}
}

func TestParseArrayIndex(t *testing.T) {
	tests := []struct {
		part    string
		idx     int
		isIndex bool
	}{
		{"[0]", 0, true},
		{"[42]", 42, true},
		{"[100]", 100, true},
		{"results", 0, false},
		{"[]", 0, false},
		{"[abc]", 0, false},
	}

	for _, tt := range tests {
		idx, isIndex := parseArrayIndex(tt.part)
		if isIndex != tt.isIndex {
			t.Errorf("parseArrayIndex(%q) isIndex = %v, want %v", tt.part, isIndex, tt.isIndex)
		}
		if isIndex && idx != tt.idx {
			t.Errorf("parseArrayIndex(%q) idx = %d, want %d", tt.part, idx, tt.idx)
		}
	}
}

func TestParseJSONFromResult(t *testing.T) {
	cmdResult := &CommandResult{
		Stdout:   `{"featureFile": "Feature: Login\n", "stats": {"lines": 2, "scenarios": 0}}`,
		Stderr:   "",
		ExitCode: 0,
	}

	result := ParseJSONFromResult(cmdResult)
	if !result.Valid() {
		t.Errorf("Expected valid JSON, got error: %s", result.Error())
	}

	if got := result.GetString("featureFile"); got != "Feature: Login\n" {
		t.Errorf("GetString('featureFile') = %q, want %q", got, "Feature: Login\n")
	}
}
