// Package serializer writes audit reports and records to various formats.
//
// Supported formats:
//   - JSON: machine-readable, indented
//   - YAML: human-readable
//   - Table: flattened key/value rows for quick inspection
//   - CSV: one row per host record, with a stable column contract for
//     downstream tooling (fixed lead columns, then record.SourceNames order)
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatCSV, "audit.csv")
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
package serializer
