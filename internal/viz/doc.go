// Package viz styles the command line output: tables, theme swatches and
// status lines rendered with lipgloss.
package viz
