// Package inventory enumerates the hosts a fleet audit targets.
//
// Resolvers are interchangeable: Static for explicit host lists (defaulting
// to the local host), FileResolver for a hosts file, NodeResolver for
// Kubernetes cluster nodes addressed by internal IP.
package inventory
