// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options:
//
//	log := logger.New(
//		logger.WithProduction("docuware"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
// The attribute helpers keep log calls uniform across the module:
//
//	log.Info("document downloaded",
//		logger.FileCabinet(fcID),
//		logger.DocumentID(docID),
//		logger.Filename(name),
//		logger.BytesOut(n),
//	)
//
// Helpers that accept an error or identifier return an empty slog.Attr for
// nil or empty values, which slog drops from the record.
package logger
