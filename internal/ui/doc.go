// Package ui renders everything gitpair shows on the terminal.
//
// Printer owns the colored prompts, menus and status lines of the interactive
// flow, while ConsoleCommandEventLogger turns git invocations into short
// human-readable log lines when the console log format is selected.
package ui
