// Package oci publishes audit reports as OCI artifacts.
//
// Output targets with the oci:// scheme (oci://registry/repository:tag) are
// parsed by ParseOutputTarget; PushReport packages the serialized report as
// a single-layer OCI 1.1 artifact and pushes it with ORAS, authenticating
// through the local Docker credential store.
package oci
