// Package pkgstore queries the host's installer registry for installed
// package entries.
//
// The number of entries matching the audited product drives the install
// check: zero means not installed, exactly one means the install is
// ambiguous (the product registers a primary and an auxiliary sub-package),
// two or more is the expected shape. Primary selects the main product entry
// by installed footprint size.
package pkgstore
