// Package fileparse reads delimited text files into lines or key-value maps.
//
// Probe sub-collectors use it to parse package registry exports, service unit
// definitions, and similar flat files. The Parser is configured with
// functional options:
//
//	p := fileparse.NewParser(
//	    fileparse.WithKVDelimiter(":"),
//	    fileparse.WithVTrimChars(`"`),
//	    fileparse.WithSkipEmptyValues(true),
//	)
//	m, err := p.GetMap("/var/lib/pkgdb/entries")
//
// Files larger than the configured maximum, or containing invalid UTF-8,
// are rejected with an error.
package fileparse
