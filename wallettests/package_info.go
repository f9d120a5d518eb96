// Package wallettests contains the end-to-end scenarios for the wallet web application.
//
// Each scenario opens its own browser session at the configured base address, runs an ordered
// list of steps against it, and closes the session again whether or not the steps succeeded.
// Checks against the page are recorded as labeled assertions and never stop a scenario; a step
// that cannot be carried out (an element that never appears, a browser that does not start)
// aborts the rest of that scenario only.
//
// The scenarios run strictly one at a time. They all act on the same live application, and
// accounts created or changed by one session would otherwise be visible to another.
package wallettests
