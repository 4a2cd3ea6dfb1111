// Package binmeta reads version metadata embedded in service and driver
// binaries on disk.
//
// Binaries built with the product's toolchain carry a marker string followed
// by the dotted numeric version. FileReader scans for that marker within a
// bounded window so a corrupt or oversized file cannot stall a probe.
package binmeta
