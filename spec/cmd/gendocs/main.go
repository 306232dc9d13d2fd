// gendocs generates living documentation from the Gherkin feature files.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

func main() {
	featuresDir := flag.String("features", "features", "Directory containing .feature files")
	outputFile := flag.String("output", "FEATURES.md", "Output Markdown file")
	title := flag.String("title", "caseforge - Living Documentation", "Documentation title")
	flag.Parse()

	// Find all feature files
	var featureFiles []string
	err := filepath.WalkDir(*featuresDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".feature") {
			featureFiles = append(featureFiles, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding feature files: %v\n", err)
		os.Exit(1)
	}
	if len(featureFiles) == 0 {
		fmt.Fprintf(os.Stderr, "No feature files found in %s\n", *featuresDir)
		os.Exit(1)
	}
	sort.Strings(featureFiles)

	// Parse all features
	var docs []*messages.GherkinDocument
	newID := (&messages.Incrementing{}).NewId
	for _, path := range featureFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			continue
		}
		doc, err := gherkin.ParseGherkinDocument(bytes.NewReader(data), newID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
			continue
		}
		if doc.Feature == nil {
			continue
		}
		doc.Uri = filepath.Base(path)
		docs = append(docs, doc)
	}

	markdown, scenarios := render(*title, docs)
	if err := os.WriteFile(*outputFile, []byte(markdown), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Living documentation generated: %s\n", *outputFile)
	fmt.Printf("Features: %d, Scenarios: %d\n", len(docs), scenarios)
}

// render produces the Markdown document and returns it together with the
// total scenario count.
func render(title string, docs []*messages.GherkinDocument) (string, int) {
	var b strings.Builder

	total := 0
	for _, doc := range docs {
		total += countScenarios(doc.Feature)
	}

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated %s. %d features, %d scenarios.\n\n",
		time.Now().Format("2006-01-02 15:04"), len(docs), total)

	// Table of contents
	for _, doc := range docs {
		fmt.Fprintf(&b, "- [%s](#%s) (`%s`)\n", doc.Feature.Name, anchor(doc.Feature.Name), doc.Uri)
	}
	b.WriteString("\n")

	for _, doc := range docs {
		renderFeature(&b, doc.Feature)
	}

	return b.String(), total
}

func countScenarios(feature *messages.Feature) int {
	n := 0
	for _, child := range feature.Children {
		if child.Scenario != nil {
			n++
		}
	}
	return n
}

func renderFeature(b *strings.Builder, feature *messages.Feature) {
	fmt.Fprintf(b, "## %s\n\n", feature.Name)
	renderTags(b, feature.Tags)

	if desc := strings.TrimSpace(feature.Description); desc != "" {
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(b, "> %s\n", strings.TrimSpace(line))
		}
		b.WriteString("\n")
	}

	for _, child := range feature.Children {
		if child.Background != nil {
			fmt.Fprintf(b, "**%s** %s\n\n", strings.TrimSpace(child.Background.Keyword), child.Background.Name)
			renderSteps(b, child.Background.Steps)
		}
		if child.Scenario != nil {
			renderScenario(b, child.Scenario)
		}
	}
}

func renderScenario(b *strings.Builder, scenario *messages.Scenario) {
	fmt.Fprintf(b, "### %s\n\n", scenario.Name)
	renderTags(b, scenario.Tags)
	renderSteps(b, scenario.Steps)

	for _, examples := range scenario.Examples {
		if examples.TableHeader == nil {
			continue
		}
		name := strings.TrimSpace(examples.Keyword)
		if examples.Name != "" {
			name += ": " + examples.Name
		}
		fmt.Fprintf(b, "**%s**\n\n", name)
		renderTable(b, examples.TableHeader, examples.TableBody)
	}
}

func renderSteps(b *strings.Builder, steps []*messages.Step) {
	for _, step := range steps {
		fmt.Fprintf(b, "- **%s** %s\n", strings.TrimSpace(step.Keyword), step.Text)

		if step.DocString != nil {
			b.WriteString("\n  ```\n")
			for _, line := range strings.Split(step.DocString.Content, "\n") {
				fmt.Fprintf(b, "  %s\n", line)
			}
			b.WriteString("  ```\n\n")
		}

		if step.DataTable != nil && len(step.DataTable.Rows) > 0 {
			b.WriteString("\n")
			renderTable(b, step.DataTable.Rows[0], step.DataTable.Rows[1:])
		}
	}
	b.WriteString("\n")
}

func renderTable(b *strings.Builder, header *messages.TableRow, body []*messages.TableRow) {
	writeRow := func(row *messages.TableRow) {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = strings.ReplaceAll(cell.Value, "|", "\\|")
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}

	writeRow(header)
	fmt.Fprintf(b, "|%s\n", strings.Repeat(" --- |", len(header.Cells)))
	for _, row := range body {
		writeRow(row)
	}
	b.WriteString("\n")
}

func renderTags(b *strings.Builder, tags []*messages.Tag) {
	if len(tags) == 0 {
		return
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = "`" + tag.Name + "`"
	}
	fmt.Fprintf(b, "%s\n\n", strings.Join(names, " "))
}

var nonAnchor = regexp.MustCompile(`[^a-z0-9 -]`)

// anchor turns a heading into the GitHub-style anchor fragment.
func anchor(heading string) string {
	a := strings.ToLower(heading)
	a = nonAnchor.ReplaceAllString(a, "")
	return strings.ReplaceAll(a, " ", "-")
}
