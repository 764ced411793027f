// Package logging configures the log/slog loggers used across xmlad.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("listening", "addr", ":8080")
//
// Components take a *slog.Logger in their constructor and fall back to
// Nop when given nil.
package logging
