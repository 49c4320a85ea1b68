// Package view turns a snapshot of inventory items into the filtered, paginated
// and status-annotated projection a user sees.
//
// The pipeline is pure: it performs no I/O, keeps no state between calls and
// never mutates its inputs, so identical inputs (including the same "today")
// always produce structurally equal output. Stages run in a fixed order:
// classify, then filter, then paginate. Filtering depends on the derived
// status, which does not exist before classification.
//
// Callers own the view state. Whenever the search text or the active filter
// changes the caller should reset the page to 1; ViewState's With helpers do
// that. Paginate additionally clamps a stale page to the last page.
package view
