package framework

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PrintResults writes the aggregate summary of a run: the tally for each scenario, the labels
// of failed assertions, any scenario that was aborted by an error, and the overall counts.
func PrintResults(out io.Writer, results Results) {
	var aborted, skipped int
	fmt.Fprintln(out, "Scenario results:")
	for _, t := range results.Tests {
		if t.Skipped {
			skipped++
			if t.SkipReason != "" {
				fmt.Fprintf(out, "  %s: SKIPPED (%s)\n", t.TestID, t.SkipReason)
			} else {
				fmt.Fprintf(out, "  %s: SKIPPED\n", t.TestID)
			}
			continue
		}
		passed, failed := t.Counts()
		if t.Aborted != nil {
			aborted++
			fmt.Fprintf(out, "  %s: ABORTED after %d passed, %d failed: %s\n", t.TestID, passed, failed, t.Aborted)
		} else {
			fmt.Fprintf(out, "  %s: %d passed, %d failed\n", t.TestID, passed, failed)
		}
		for _, a := range t.Assertions {
			if !a.Passed {
				fmt.Fprintf(out, "    FAILED: %s\n", describeAssertion(a))
			}
		}
		for _, err := range t.Errors {
			fmt.Fprintf(out, "    ERROR: %s\n", err)
		}
	}
	passed, failed := results.Counts()
	fmt.Fprintf(out, "Total: %d passed, %d failed, %d aborted, %d skipped\n", passed, failed, aborted, skipped)
}

func describeAssertion(a Assertion) string {
	if a.Label == "" {
		return "(unlabeled assertion)"
	}
	return a.Label
}

type reportDocument struct {
	Passed    int              `yaml:"passed"`
	Failed    int              `yaml:"failed"`
	OK        bool             `yaml:"ok"`
	Scenarios []scenarioReport `yaml:"scenarios"`
}

type scenarioReport struct {
	Name       string            `yaml:"name"`
	Outcome    string            `yaml:"outcome"`
	SkipReason string            `yaml:"skipReason,omitempty"`
	Aborted    string            `yaml:"aborted,omitempty"`
	Errors     []string          `yaml:"errors,omitempty"`
	Assertions []assertionReport `yaml:"assertions,omitempty"`
}

type assertionReport struct {
	Label   string `yaml:"label"`
	Passed  bool   `yaml:"passed"`
	Message string `yaml:"message,omitempty"`
}

func outcomeOf(t TestResult) string {
	switch {
	case t.Skipped:
		return "skipped"
	case t.Aborted != nil:
		return "aborted"
	case t.Failed():
		return "failed"
	default:
		return "passed"
	}
}

// WriteReport serializes the results as a YAML document.
func WriteReport(out io.Writer, results Results) error {
	doc := reportDocument{OK: results.OK()}
	doc.Passed, doc.Failed = results.Counts()
	for _, t := range results.Tests {
		s := scenarioReport{
			Name:       t.TestID.String(),
			Outcome:    outcomeOf(t),
			SkipReason: t.SkipReason,
		}
		if t.Aborted != nil {
			s.Aborted = t.Aborted.Error()
		}
		for _, err := range t.Errors {
			s.Errors = append(s.Errors, err.Error())
		}
		for _, a := range t.Assertions {
			s.Assertions = append(s.Assertions, assertionReport(a))
		}
		doc.Scenarios = append(doc.Scenarios, s)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteReportFile writes the YAML report to the given path.
func WriteReportFile(path string, results Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FailedScenarioNames returns the names of the scenarios that failed or aborted.
func FailedScenarioNames(results Results) []string {
	var names []string
	for _, t := range results.Failures {
		names = append(names, t.TestID.String())
	}
	return names
}
