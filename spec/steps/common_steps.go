// Package steps provides step definitions for the caseforge CLI Gherkin specs.
package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/caseforge/caseforge/spec/support"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	testEnvKey       contextKey = "testEnv"
	cliRunnerKey     contextKey = "cliRunner"
	lastResultKey    contextKey = "lastResult"
	mockEnhancerKey  contextKey = "mockEnhancer"
	mockEvaluatorKey contextKey = "mockEvaluator"
)

// Environment variables the CLI honors for pointing clients at test servers.
const (
	enhancerURLEnv  = "CASEFORGE_ENHANCER_URL"
	evaluatorURLEnv = "CASEFORGE_EVALUATOR_URL"
)

// getTestEnv retrieves the TestEnv from context.
func getTestEnv(ctx context.Context) *support.TestEnv {
	if env, ok := ctx.Value(testEnvKey).(*support.TestEnv); ok {
		return env
	}
	return nil
}

// getCLIRunner retrieves the CLIRunner from context.
func getCLIRunner(ctx context.Context) *support.CLIRunner {
	if runner, ok := ctx.Value(cliRunnerKey).(*support.CLIRunner); ok {
		return runner
	}
	return nil
}

// getLastResult retrieves the last command result from context.
func getLastResult(ctx context.Context) *support.CommandResult {
	if result, ok := ctx.Value(lastResultKey).(*support.CommandResult); ok {
		return result
	}
	return nil
}

// getMockEnhancer retrieves the mock enhancement service from context.
func getMockEnhancer(ctx context.Context) *support.MockEnhancerServer {
	if mock, ok := ctx.Value(mockEnhancerKey).(*support.MockEnhancerServer); ok {
		return mock
	}
	return nil
}

// getMockEvaluator retrieves the mock evaluation sidecar from context.
func getMockEvaluator(ctx context.Context) *support.MockEvaluatorServer {
	if mock, ok := ctx.Value(mockEvaluatorKey).(*support.MockEvaluatorServer); ok {
		return mock
	}
	return nil
}

// InitializeCommonSteps registers all common step definitions.
func InitializeCommonSteps(ctx *godog.ScenarioContext) {
	// Before each scenario: set up test environment
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		env, err := support.NewTestEnv()
		if err != nil {
			return ctx, fmt.Errorf("failed to create test environment: %w", err)
		}

		// Create CLI runner pointing to the built binary.
		// Assumes `go build` has been run and caseforge is in PATH, or
		// CASEFORGE_TEST_BINARY points at it.
		runner := support.NewCLIRunner(os.Getenv("CASEFORGE_TEST_BINARY"))
		runner.WorkDir = env.TempDir

		ctx = context.WithValue(ctx, testEnvKey, env)
		ctx = context.WithValue(ctx, cliRunnerKey, runner)

		return ctx, nil
	})

	// After each scenario: clean up test environment and mock servers
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if mock := getMockEnhancer(ctx); mock != nil {
			mock.Close()
		}
		if mock := getMockEvaluator(ctx); mock != nil {
			mock.Close()
		}

		env := getTestEnv(ctx)
		if env != nil {
			if cleanupErr := env.Cleanup(); cleanupErr != nil {
				// Log but don't fail on cleanup errors
				fmt.Printf("Warning: cleanup failed: %v\n", cleanupErr)
			}
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a batch file "([^"]*)" containing:$`, aFileContaining)
	ctx.Step(`^a file "([^"]*)" containing:$`, aFileContaining)
	ctx.Step(`^a batch file "([^"]*)" with the following test cases:$`, aBatchFileWithTheFollowingTestCases)
	ctx.Step(`^the batch fixture "([^"]*)" is written to "([^"]*)"$`, theBatchFixtureIsWrittenTo)
	ctx.Step(`^a file "([^"]*)" with content "([^"]*)"$`, aFileWithContent)
	ctx.Step(`^a config file with the following content:$`, aConfigFileWithTheFollowingContent)
	ctx.Step(`^a credentials file with enhancer token "([^"]*)" and evaluator key "([^"]*)"$`, aCredentialsFile)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, theEnvironmentVariableIs)
	ctx.Step(`^the environment variable "([^"]*)" is not set$`, theEnvironmentVariableIsNotSet)

	// Mock enhancement service steps
	ctx.Step(`^a mock enhancement service is running$`, aMockEnhancementServiceIsRunning)
	ctx.Step(`^the mock enhancement service expects token "([^"]*)"$`, theMockEnhancementServiceExpectsToken)
	ctx.Step(`^the mock enhancement service fails with status (\d+) and message "([^"]*)"$`, theMockEnhancementServiceFails)
	ctx.Step(`^the mock enhancement service returns the feature:$`, theMockEnhancementServiceReturnsTheFeature)

	// Mock evaluation sidecar steps
	ctx.Step(`^a mock evaluation sidecar is running$`, aMockEvaluationSidecarIsRunning)
	ctx.Step(`^the mock sidecar reports status "([^"]*)"$`, theMockSidecarReportsStatus)
	ctx.Step(`^the mock sidecar is stopped$`, theMockSidecarIsStopped)
	ctx.Step(`^the mock sidecar expects API key "([^"]*)"$`, theMockSidecarExpectsAPIKey)
	ctx.Step(`^the mock sidecar scores "([^"]*)" at ([0-9.]+)$`, theMockSidecarScores)
	ctx.Step(`^the mock sidecar fails metric "([^"]*)" with "([^"]*)"$`, theMockSidecarFailsMetric)
	ctx.Step(`^no evaluation sidecar is running$`, noEvaluationSidecarIsRunning)

	// When steps
	ctx.Step(`^I run "([^"]*)"$`, iRun)
	ctx.Step(`^I run "([^"]*)" with stdin:$`, iRunWithStdin)

	// Then steps
	ctx.Step(`^the exit code should be (\d+)$`, theExitCodeShouldBe)
	ctx.Step(`^stdout should contain "([^"]*)"$`, stdoutShouldContain)
	ctx.Step(`^stdout should not contain "([^"]*)"$`, stdoutShouldNotContain)
	ctx.Step(`^stderr should contain "([^"]*)"$`, stderrShouldContain)
	ctx.Step(`^stdout should be empty$`, stdoutShouldBeEmpty)
	ctx.Step(`^stderr should be empty$`, stderrShouldBeEmpty)
	ctx.Step(`^the output should match:$`, theOutputShouldMatch)

	// JSON output steps
	ctx.Step(`^the JSON output should be valid$`, theJSONOutputShouldBeValid)
	ctx.Step(`^the JSON output should have "([^"]*)" equal to "([^"]*)"$`, theJSONOutputShouldHaveEqualTo)
	ctx.Step(`^the JSON output should have "([^"]*)" as null$`, theJSONOutputShouldHaveAsNull)
	ctx.Step(`^the JSON output should have array length "([^"]*)" equal to (\d+)$`, theJSONOutputShouldHaveArrayLengthEqualTo)

	// File steps
	ctx.Step(`^the file "([^"]*)" should exist$`, theFileShouldExist)
	ctx.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, theFileShouldContain)

	// Generated feature steps
	ctx.Step(`^the generated feature should be titled "([^"]*)"$`, theGeneratedFeatureShouldBeTitled)
	ctx.Step(`^the generated feature should have (\d+) scenario outlines?$`, theGeneratedFeatureShouldHaveScenarioOutlines)
	ctx.Step(`^the generated feature should have a "([^"]*)" step "([^"]*)"$`, theGeneratedFeatureShouldHaveAStep)
	ctx.Step(`^the generated feature should have an examples column "([^"]*)"$`, theGeneratedFeatureShouldHaveAnExamplesColumn)
	ctx.Step(`^the examples column "([^"]*)" should contain "([^"]*)"$`, theExamplesColumnShouldContain)
	ctx.Step(`^the feature file "([^"]*)" should have (\d+) scenario outlines?$`, theFeatureFileShouldHaveScenarioOutlines)

	// Mock service assertion steps
	ctx.Step(`^the enhancement service should have received (\d+) requests?$`, theEnhancementServiceShouldHaveReceivedRequests)
	ctx.Step(`^the enhancement request should use provider "([^"]*)"$`, theEnhancementRequestShouldUseProvider)
	ctx.Step(`^the enhancement request should have feature name "([^"]*)"$`, theEnhancementRequestShouldHaveFeatureName)
	ctx.Step(`^the evaluation request should have output "([^"]*)"$`, theEvaluationRequestShouldHaveOutput)
	ctx.Step(`^the evaluation request should have query "([^"]*)"$`, theEvaluationRequestShouldHaveQuery)
}

// aFileContaining writes a file verbatim from a docstring. The content is
// not validated so scenarios can exercise malformed input.
func aFileContaining(ctx context.Context, path string, content *godog.DocString) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	if err := env.CreateFile(path, content.Content); err != nil {
		return ctx, fmt.Errorf("failed to create file %q: %w", path, err)
	}
	return ctx, nil
}

// aBatchFileWithTheFollowingTestCases builds a batch from a table. Each row
// becomes one single-step test case.
func aBatchFileWithTheFollowingTestCases(ctx context.Context, path string, table *godog.Table) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	if len(table.Rows) < 2 {
		return ctx, fmt.Errorf("table must have at least a header row and one data row")
	}

	header := table.Rows[0]
	colIndex := make(map[string]int)
	for i, cell := range header.Cells {
		colIndex[cell.Value] = i
	}
	if _, ok := colIndex["name"]; !ok {
		return ctx, fmt.Errorf("table must have 'name' column")
	}

	fixture := &support.BatchFixture{}
	for n, row := range table.Rows[1:] {
		getValue := func(col string) string {
			if idx, ok := colIndex[col]; ok && idx < len(row.Cells) {
				return row.Cells[idx].Value
			}
			return ""
		}

		id := getValue("id")
		if id == "" {
			id = fmt.Sprintf("TC-%d", n+1)
		}

		fixture.TestCases = append(fixture.TestCases, support.CaseFixture{
			ID:       id,
			Name:     getValue("name"),
			TestType: getValue("type"),
			Priority: getValue("priority"),
			Steps: []support.StepFixture{
				{
					Order:          1,
					Step:           getValue("step"),
					TestData:       getValue("test_data"),
					ExpectedResult: getValue("expected_result"),
				},
			},
		})
	}

	if err := fixture.WriteJSON(env, path); err != nil {
		return ctx, fmt.Errorf("failed to write batch file %q: %w", path, err)
	}
	return ctx, nil
}

// theBatchFixtureIsWrittenTo materializes a named fixture as a batch file.
func theBatchFixtureIsWrittenTo(ctx context.Context, name, path string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	// Fixtures live next to the feature files, not in the scenario's
	// temp directory.
	loader := support.NewFixtureLoader(filepath.Join(env.OriginalDir, "fixtures"))
	if err := loader.WriteBatchFile(env, name, path); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// aFileWithContent creates a file with the specified content.
func aFileWithContent(ctx context.Context, path, content string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	if err := env.CreateFile(path, content); err != nil {
		return ctx, fmt.Errorf("failed to create file %q: %w", path, err)
	}
	return ctx, nil
}

// aConfigFileWithTheFollowingContent writes a project-local config file.
func aConfigFileWithTheFollowingContent(ctx context.Context, content *godog.DocString) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	gen := support.NewConfigGenerator()
	if err := gen.GenerateFromYAML(env, content.Content); err != nil {
		return ctx, fmt.Errorf("failed to write config file: %w", err)
	}
	return ctx, nil
}

// aCredentialsFile writes a user-global credentials file inside the test HOME.
func aCredentialsFile(ctx context.Context, enhancerToken, evaluatorKey string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	gen := support.NewConfigGenerator()
	if err := gen.WriteCredentials(env, enhancerToken, evaluatorKey); err != nil {
		return ctx, fmt.Errorf("failed to write credentials file: %w", err)
	}
	return ctx, nil
}

// theEnvironmentVariableIs sets an environment variable for the scenario.
func theEnvironmentVariableIs(ctx context.Context, key, value string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	env.SetEnv(key, value)
	return ctx, nil
}

// theEnvironmentVariableIsNotSet unsets an environment variable for the scenario.
func theEnvironmentVariableIsNotSet(ctx context.Context, key string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	env.UnsetEnv(key)
	return ctx, nil
}

// aMockEnhancementServiceIsRunning starts a mock enhancement service and
// points the CLI at it.
func aMockEnhancementServiceIsRunning(ctx context.Context) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	mock := support.NewMockEnhancerServer()
	env.SetEnv(enhancerURLEnv, mock.URL)

	return context.WithValue(ctx, mockEnhancerKey, mock), nil
}

// theMockEnhancementServiceExpectsToken makes the mock require a bearer token.
func theMockEnhancementServiceExpectsToken(ctx context.Context, token string) (context.Context, error) {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock enhancement service is not running")
	}

	mock.ExpectedToken = token
	return ctx, nil
}

// theMockEnhancementServiceFails injects a failure into the mock.
func theMockEnhancementServiceFails(ctx context.Context, status int, message string) (context.Context, error) {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock enhancement service is not running")
	}

	mock.SetFailure(status, message)
	return ctx, nil
}

// theMockEnhancementServiceReturnsTheFeature sets a canned feature response.
func theMockEnhancementServiceReturnsTheFeature(ctx context.Context, content *godog.DocString) (context.Context, error) {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock enhancement service is not running")
	}

	mock.CannedFeature = content.Content + "\n"
	return ctx, nil
}

// aMockEvaluationSidecarIsRunning starts a mock evaluation sidecar and
// points the CLI at it.
func aMockEvaluationSidecarIsRunning(ctx context.Context) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	mock := support.NewMockEvaluatorServer()
	env.SetEnv(evaluatorURLEnv, mock.URL)

	return context.WithValue(ctx, mockEvaluatorKey, mock), nil
}

// theMockSidecarReportsStatus changes the health status the mock reports.
func theMockSidecarReportsStatus(ctx context.Context, status string) (context.Context, error) {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock evaluation sidecar is not running")
	}

	mock.Status = status
	return ctx, nil
}

// theMockSidecarIsStopped shuts the mock down while leaving the CLI pointed
// at its old address.
func theMockSidecarIsStopped(ctx context.Context) (context.Context, error) {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock evaluation sidecar is not running")
	}

	mock.Close()
	return ctx, nil
}

// theMockSidecarExpectsAPIKey makes the mock require a bearer API key.
func theMockSidecarExpectsAPIKey(ctx context.Context, key string) (context.Context, error) {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock evaluation sidecar is not running")
	}

	mock.ExpectedAPIKey = key
	return ctx, nil
}

// theMockSidecarScores sets a canned score for a metric.
func theMockSidecarScores(ctx context.Context, metric, score string) (context.Context, error) {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock evaluation sidecar is not running")
	}

	value, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return ctx, fmt.Errorf("invalid score %q: %w", score, err)
	}
	mock.SetScore(metric, value)
	return ctx, nil
}

// theMockSidecarFailsMetric makes a metric fail with the given message.
func theMockSidecarFailsMetric(ctx context.Context, metric, message string) (context.Context, error) {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return ctx, fmt.Errorf("mock evaluation sidecar is not running")
	}

	mock.FailMetric(metric, message)
	return ctx, nil
}

// noEvaluationSidecarIsRunning points the CLI at an address nothing listens on.
func noEvaluationSidecarIsRunning(ctx context.Context) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	env.SetEnv(evaluatorURLEnv, "http://127.0.0.1:9")
	return ctx, nil
}

// iRun executes a CLI command.
func iRun(ctx context.Context, command string) (context.Context, error) {
	runner := getCLIRunner(ctx)
	if runner == nil {
		return ctx, fmt.Errorf("CLI runner not initialized")
	}

	result := runner.Run(command)
	ctx = context.WithValue(ctx, lastResultKey, result)

	return ctx, nil
}

// iRunWithStdin executes a CLI command with the docstring fed to stdin.
func iRunWithStdin(ctx context.Context, command string, input *godog.DocString) (context.Context, error) {
	runner := getCLIRunner(ctx)
	if runner == nil {
		return ctx, fmt.Errorf("CLI runner not initialized")
	}

	runner.Stdin = input.Content
	result := runner.Run(command)
	ctx = context.WithValue(ctx, lastResultKey, result)

	return ctx, nil
}

// theExitCodeShouldBe verifies the exit code of the last command.
func theExitCodeShouldBe(ctx context.Context, expected int) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if result.ExitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, result.ExitCode, result.Stdout, result.Stderr)
	}

	return nil
}

// stdoutShouldContain verifies stdout contains a substring.
func stdoutShouldContain(ctx context.Context, expected string) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if !strings.Contains(result.Stdout, expected) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", expected, result.Stdout)
	}

	return nil
}

// stdoutShouldNotContain verifies stdout does not contain a substring.
func stdoutShouldNotContain(ctx context.Context, unexpected string) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if strings.Contains(result.Stdout, unexpected) {
		return fmt.Errorf("expected stdout to not contain %q, but it does:\n%s", unexpected, result.Stdout)
	}

	return nil
}

// stderrShouldContain verifies stderr contains a substring.
func stderrShouldContain(ctx context.Context, expected string) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if !strings.Contains(result.Stderr, expected) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", expected, result.Stderr)
	}

	return nil
}

// stdoutShouldBeEmpty verifies stdout is empty.
func stdoutShouldBeEmpty(ctx context.Context) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if strings.TrimSpace(result.Stdout) != "" {
		return fmt.Errorf("expected stdout to be empty, got:\n%s", result.Stdout)
	}

	return nil
}

// stderrShouldBeEmpty verifies stderr is empty.
func stderrShouldBeEmpty(ctx context.Context) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	if strings.TrimSpace(result.Stderr) != "" {
		return fmt.Errorf("expected stderr to be empty, got:\n%s", result.Stderr)
	}

	return nil
}

// theOutputShouldMatch verifies stdout matches a docstring exactly (ignoring
// leading/trailing whitespace).
func theOutputShouldMatch(ctx context.Context, expected *godog.DocString) error {
	result := getLastResult(ctx)
	if result == nil {
		return fmt.Errorf("no command has been run")
	}

	actual := strings.TrimSpace(result.Stdout)
	expectedTrimmed := strings.TrimSpace(expected.Content)

	if actual != expectedTrimmed {
		return fmt.Errorf("output did not match\nExpected:\n%s\n\nActual:\n%s", expectedTrimmed, actual)
	}

	return nil
}

// parseJSONOutput parses the last command's stdout as JSON.
func parseJSONOutput(ctx context.Context) (*support.JSONResult, error) {
	result := getLastResult(ctx)
	if result == nil {
		return nil, fmt.Errorf("no command has been run")
	}

	jsonResult := support.ParseJSON(result.Stdout)
	if !jsonResult.Valid() {
		return nil, fmt.Errorf("stdout is not valid JSON: %s\nstdout:\n%s", jsonResult.Error(), result.Stdout)
	}
	return jsonResult, nil
}

// theJSONOutputShouldBeValid verifies stdout parses as JSON.
func theJSONOutputShouldBeValid(ctx context.Context) error {
	_, err := parseJSONOutput(ctx)
	return err
}

// theJSONOutputShouldHaveEqualTo verifies a JSON path has the expected value.
func theJSONOutputShouldHaveEqualTo(ctx context.Context, path, expected string) error {
	jsonResult, err := parseJSONOutput(ctx)
	if err != nil {
		return err
	}

	if !jsonResult.Equals(path, expected) {
		return fmt.Errorf("expected JSON path %q to be %q, got %v", path, expected, jsonResult.Get(path))
	}
	return nil
}

// theJSONOutputShouldHaveAsNull verifies a JSON path exists and is null.
func theJSONOutputShouldHaveAsNull(ctx context.Context, path string) error {
	jsonResult, err := parseJSONOutput(ctx)
	if err != nil {
		return err
	}

	if !jsonResult.IsNull(path) {
		return fmt.Errorf("expected JSON path %q to be null, got %v", path, jsonResult.Get(path))
	}
	return nil
}

// theJSONOutputShouldHaveArrayLengthEqualTo verifies an array's length.
func theJSONOutputShouldHaveArrayLengthEqualTo(ctx context.Context, path string, expected int) error {
	jsonResult, err := parseJSONOutput(ctx)
	if err != nil {
		return err
	}

	got := jsonResult.ArrayLen(path)
	if got != expected {
		return fmt.Errorf("expected JSON array %q to have %d elements, got %d", path, expected, got)
	}
	return nil
}

// theFileShouldExist verifies that a file exists in the test environment.
func theFileShouldExist(ctx context.Context, path string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	if !env.FileExists(path) {
		return fmt.Errorf("file %q does not exist", path)
	}
	return nil
}

// theFileShouldContain verifies a file's content contains a substring.
func theFileShouldContain(ctx context.Context, path, expected string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	content, err := env.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !strings.Contains(content, expected) {
		return fmt.Errorf("expected file %q to contain %q, got:\n%s", path, expected, content)
	}
	return nil
}

// generatedFeature parses the last command's stdout as a feature file.
func generatedFeature(ctx context.Context) (*support.FeatureText, error) {
	result := getLastResult(ctx)
	if result == nil {
		return nil, fmt.Errorf("no command has been run")
	}

	ft := support.ParseFeatureText(result.Stdout)
	if !ft.Valid() {
		return nil, fmt.Errorf("stdout is not a feature file: %s\nstdout:\n%s", ft.Error(), result.Stdout)
	}
	return ft, nil
}

// theGeneratedFeatureShouldBeTitled verifies the feature title on stdout.
func theGeneratedFeatureShouldBeTitled(ctx context.Context, title string) error {
	ft, err := generatedFeature(ctx)
	if err != nil {
		return err
	}

	if ft.Title != title {
		return fmt.Errorf("expected feature title %q, got %q", title, ft.Title)
	}
	return nil
}

// theGeneratedFeatureShouldHaveScenarioOutlines verifies the outline count
// on stdout.
func theGeneratedFeatureShouldHaveScenarioOutlines(ctx context.Context, expected int) error {
	ft, err := generatedFeature(ctx)
	if err != nil {
		return err
	}

	if got := ft.ScenarioCount(); got != expected {
		return fmt.Errorf("expected %d scenario outlines, got %d", expected, got)
	}
	return nil
}

// theGeneratedFeatureShouldHaveAStep verifies a keyword and step text on stdout.
func theGeneratedFeatureShouldHaveAStep(ctx context.Context, keyword, text string) error {
	ft, err := generatedFeature(ctx)
	if err != nil {
		return err
	}

	if !ft.HasStep(keyword, text) {
		return fmt.Errorf("expected a %q step %q, steps were:\n%v", keyword, text, ft.Steps)
	}
	return nil
}

// theGeneratedFeatureShouldHaveAnExamplesColumn verifies an Examples header
// column on stdout.
func theGeneratedFeatureShouldHaveAnExamplesColumn(ctx context.Context, column string) error {
	ft, err := generatedFeature(ctx)
	if err != nil {
		return err
	}

	if !ft.HasExampleColumn(column) {
		return fmt.Errorf("expected an examples column %q, headers were %v", column, ft.ExampleHeaders)
	}
	return nil
}

// theExamplesColumnShouldContain verifies a value appears in an Examples column.
func theExamplesColumnShouldContain(ctx context.Context, column, expected string) error {
	ft, err := generatedFeature(ctx)
	if err != nil {
		return err
	}

	values := ft.ExampleColumn(column)
	if values == nil {
		return fmt.Errorf("examples column %q does not exist, headers were %v", column, ft.ExampleHeaders)
	}
	for _, v := range values {
		if v == expected {
			return nil
		}
	}
	return fmt.Errorf("expected examples column %q to contain %q, values were %v", column, expected, values)
}

// theFeatureFileShouldHaveScenarioOutlines verifies the outline count in a
// written file.
func theFeatureFileShouldHaveScenarioOutlines(ctx context.Context, path string, expected int) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	ft, err := support.ReadFeatureFile(env, path)
	if err != nil {
		return fmt.Errorf("failed to read feature file %q: %w", path, err)
	}

	if got := ft.ScenarioCount(); got != expected {
		return fmt.Errorf("expected %d scenario outlines in %q, got %d", expected, path, got)
	}
	return nil
}

// theEnhancementServiceShouldHaveReceivedRequests verifies the mock's
// request count.
func theEnhancementServiceShouldHaveReceivedRequests(ctx context.Context, expected int) error {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return fmt.Errorf("mock enhancement service is not running")
	}

	if got := mock.RequestCount(); got != expected {
		return fmt.Errorf("expected %d enhancement requests, got %d", expected, got)
	}
	return nil
}

// theEnhancementRequestShouldUseProvider verifies the llmProvider of the
// last enhancement request.
func theEnhancementRequestShouldUseProvider(ctx context.Context, provider string) error {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return fmt.Errorf("mock enhancement service is not running")
	}

	last := mock.LastRequest()
	if last == nil {
		return fmt.Errorf("the enhancement service received no requests")
	}
	if last.LLMProvider != provider {
		return fmt.Errorf("expected provider %q, got %q", provider, last.LLMProvider)
	}
	return nil
}

// theEnhancementRequestShouldHaveFeatureName verifies the featureName of the
// last enhancement request.
func theEnhancementRequestShouldHaveFeatureName(ctx context.Context, name string) error {
	mock := getMockEnhancer(ctx)
	if mock == nil {
		return fmt.Errorf("mock enhancement service is not running")
	}

	last := mock.LastRequest()
	if last == nil {
		return fmt.Errorf("the enhancement service received no requests")
	}
	if last.FeatureName != name {
		return fmt.Errorf("expected feature name %q, got %q", name, last.FeatureName)
	}
	return nil
}

// theEvaluationRequestShouldHaveOutput verifies the output field of the
// last evaluation request.
func theEvaluationRequestShouldHaveOutput(ctx context.Context, output string) error {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return fmt.Errorf("mock evaluation sidecar is not running")
	}

	last := mock.LastRequest()
	if last == nil {
		return fmt.Errorf("the evaluation sidecar received no requests")
	}
	if last.Output != output {
		return fmt.Errorf("expected output %q, got %q", output, last.Output)
	}
	return nil
}

// theEvaluationRequestShouldHaveQuery verifies the query field of the last
// evaluation request.
func theEvaluationRequestShouldHaveQuery(ctx context.Context, query string) error {
	mock := getMockEvaluator(ctx)
	if mock == nil {
		return fmt.Errorf("mock evaluation sidecar is not running")
	}

	last := mock.LastRequest()
	if last == nil {
		return fmt.Errorf("the evaluation sidecar received no requests")
	}
	if last.Query != query {
		return fmt.Errorf("expected query %q, got %q", query, last.Query)
	}
	return nil
}
