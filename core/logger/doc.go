// Package logger is a standardized event logging framework for the shell.
//
// Events are structured slog records carrying an "event" attribute and the
// id of the session that produced them. Written as JSON lines they can be
// read back with ReadJSONLinesLog and summarized with a Report.
package logger
