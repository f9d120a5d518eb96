// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one application under test.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// labeled assertions, errors, and debug output.
//
// 2. A check that does not hold is recorded and the test continues. A step that cannot be
// carried out at all aborts the test with a StepError; the run then moves on to the next test.
//
// 3. At the end of a run the accumulated Results are summarized, optionally written as a
// YAML report, and determine the process exit status.
//
// The domain-specific code that knows what is being tested is responsible for opening and
// closing whatever resources a test uses, and for providing a domain-specific test API on
// top of the test context.
package framework
