// Package logger provides a small wrapper around zap: a global sugared
// logger with a console encoder, level configuration, and level parsing.
// Components receive a named child of the global logger at construction,
// keeping the core packages free of process-wide state.
package logger
