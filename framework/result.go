package framework

import (
	"fmt"
	"strings"
)

const excludedByFilter = "excluded by filter parameters"

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Assertions []Assertion
	Errors     []error
	Aborted    error
	Skipped    bool
	SkipReason string
}

// Assertion is one labeled check that was made during a test.
type Assertion struct {
	Label   string
	Passed  bool
	Message string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of passed and failed assertions over all tests.
func (r Results) Counts() (passed, failed int) {
	for _, t := range r.Tests {
		p, f := t.Counts()
		passed += p
		failed += f
	}
	return
}

// Counts returns the number of passed and failed assertions in this test.
func (t TestResult) Counts() (passed, failed int) {
	for _, a := range t.Assertions {
		if a.Passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

func (t TestResult) Failed() bool {
	if t.Skipped {
		return false
	}
	_, failed := t.Counts()
	return failed > 0 || len(t.Errors) > 0 || t.Aborted != nil
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// StepError is the error that aborts a scenario: the step at the given position (1-based)
// could not be carried out. Step 0 means the scenario's session could not be opened.
type StepError struct {
	Step        int
	Description string
	Err         error
}

func (e *StepError) Error() string {
	if e.Step == 0 {
		return fmt.Sprintf("%s failed: %s", e.Description, e.Err)
	}
	return fmt.Sprintf("step %d (%s) failed: %s", e.Step, e.Description, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
