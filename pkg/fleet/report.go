/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package fleet

import (
	"github.com/fleetops/verscan/pkg/header"
	"github.com/fleetops/verscan/pkg/record"

	"github.com/google/uuid"
)

// Summary holds the batch completion counts.
type Summary struct {
	// Total is the number of records in the report.
	Total int `json:"total" yaml:"total"`

	// Passed counts hosts whose validation passed.
	Passed int `json:"passed" yaml:"passed"`

	// Failed counts hosts whose validation failed, for any reason.
	Failed int `json:"failed" yaml:"failed"`

	// NotInstalled counts hosts where the product is absent.
	NotInstalled int `json:"notInstalled" yaml:"notInstalled"`

	// Unknown counts hosts whose install state could not be determined,
	// unreachable and transport-failed hosts included.
	Unknown int `json:"unknown" yaml:"unknown"`
}

// Summarize computes batch counts over a set of records.
func Summarize(records []*record.Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.ValidationPassed {
			s.Passed++
		} else {
			s.Failed++
		}
		switch r.InstallCheck {
		case record.InstallStateNotInstalled:
			s.NotInstalled++
		case record.InstallStateUnknown:
			s.Unknown++
		}
	}
	return s
}

// Report is the serializable aggregate of a fleet audit run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// MinimumVersion is the baseline every host was audited against.
	MinimumVersion string `json:"minimumVersion" yaml:"minimumVersion"`

	// Records holds one entry per audited host, in input order.
	Records []*record.Record `json:"records" yaml:"records"`

	// Summary holds the batch completion counts.
	Summary Summary `json:"summary" yaml:"summary"`
}

// AuditRecords returns the per-host records, satisfying the serializer's
// CSV record source.
func (r *Report) AuditRecords() []*record.Record {
	return r.Records
}

// NewReport assembles a report from collected records. The header carries a
// unique run id for correlating exports of the same audit.
func NewReport(version, minimum string, records []*record.Record) *Report {
	r := &Report{
		MinimumVersion: minimum,
		Records:        records,
		Summary:        Summarize(records),
	}
	r.Header.Init(header.KindAuditReport, record.APIVersion, version)
	r.Metadata["run-id"] = uuid.NewString()
	return r
}
