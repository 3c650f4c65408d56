// Package view holds the display state of the solver pages independent of
// any browser: which iteration section is shown, which result tab is
// active, the sidebar collapse flag, the project checkboxes and the search
// filter.
//
// State changes go through Update (or the State methods it dispatches to);
// Render derives everything the page shows from a State and the Page it
// describes. The HTML templates, the browser script and the terminal viewer
// all render from the same Frame, so a label or visibility rule lives in
// exactly one place.
//
// Nothing here performs I/O. Notifying the server of a sidebar change or
// submitting the project selection is the job of package client.
package view
