/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/fleetops/verscan/pkg/record"
)

// RecordSource is implemented by aggregates that carry audit records,
// letting the CSV format accept a whole report.
type RecordSource interface {
	AuditRecords() []*record.Record
}

// serializeCSV writes one row per host record. Column names and order are a
// stable downstream contract: the fixed lead columns followed by
// record.SourceNames in canonical order, then any extra sources sorted.
func (w *Writer) serializeCSV(data any) error {
	var records []*record.Record
	switch v := data.(type) {
	case []*record.Record:
		records = v
	case *record.Record:
		records = []*record.Record{v}
	case RecordSource:
		records = v.AuditRecords()
	default:
		return fmt.Errorf("csv format requires audit records, got %T", data)
	}

	// extra sources appear when probes register product-specific
	// sub-components; the union keeps every row the same width
	var extras []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, name := range r.ExtraSourceNames() {
			if !seen[name] {
				seen[name] = true
				extras = append(extras, name)
			}
		}
	}

	header := []string{"host", "install_check", "minimum_version", "validation_passed"}
	header = append(header, record.SourceNames...)
	header = append(header, extras...)

	cw := csv.NewWriter(w.output)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, 0, len(header))
	for _, r := range records {
		row = row[:0]
		row = append(row,
			r.Host,
			string(r.InstallCheck),
			r.MinimumVersion,
			strconv.FormatBool(r.ValidationPassed),
		)
		for _, name := range record.SourceNames {
			row = append(row, r.Source(name))
		}
		for _, name := range extras {
			row = append(row, r.Source(name))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.Host, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
