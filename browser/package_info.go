// Package browser opens Chromium sessions and provides the primitives that scenarios are
// written in: locating elements, clicking, typing, reading the page, and waiting.
//
// Two interchangeable drivers are available, chromedp and rod. Both talk to Chromium over the
// DevTools protocol and give the same semantics for every primitive; Config.Driver selects one.
package browser
