/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package probe

import (
	"github.com/fleetops/verscan/pkg/probe/binmeta"
	"github.com/fleetops/verscan/pkg/probe/clitool"
	"github.com/fleetops/verscan/pkg/probe/pkgstore"
)

// Factory creates the probe's sub-collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreatePackageStore() pkgstore.Store
	CreateProductRegistry() ProductRegistry
	CreateCLIRunner() clitool.Runner
	CreateBinaryReader() binmeta.Reader
	CreateUnitResolver() UnitResolver
}

// FactoryOption configures the DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithRegistryDir sets the installer registry directory.
func WithRegistryDir(dir string) FactoryOption {
	return func(f *DefaultFactory) {
		f.RegistryDir = dir
	}
}

// WithProductInfoPath sets the product info file path.
func WithProductInfoPath(path string) FactoryOption {
	return func(f *DefaultFactory) {
		f.ProductInfoPath = path
	}
}

// DefaultFactory creates sub-collectors with production dependencies.
type DefaultFactory struct {
	RegistryDir     string
	ProductInfoPath string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreatePackageStore creates the installer registry store.
func (f *DefaultFactory) CreatePackageStore() pkgstore.Store {
	return pkgstore.NewFileStore(f.RegistryDir)
}

// CreateProductRegistry creates the product registry reader.
func (f *DefaultFactory) CreateProductRegistry() ProductRegistry {
	return &FileProductRegistry{Path: f.ProductInfoPath}
}

// CreateCLIRunner creates the CLI invoker.
func (f *DefaultFactory) CreateCLIRunner() clitool.Runner {
	return &clitool.ExecRunner{}
}

// CreateBinaryReader creates the binary metadata reader.
func (f *DefaultFactory) CreateBinaryReader() binmeta.Reader {
	return &binmeta.FileReader{}
}

// CreateUnitResolver creates the systemd unit resolver.
func (f *DefaultFactory) CreateUnitResolver() UnitResolver {
	return DBusUnitResolver{}
}
