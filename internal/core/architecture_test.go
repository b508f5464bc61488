package core

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyCoreImportsPersistenceInfra ensures that only the core storage
// factory wires the durable backend implementations. Every other package must
// depend on the domain.Backend interface instead of importing infra packages
// directly.
func TestOnlyCoreImportsPersistenceInfra(t *testing.T) {
	assertInfraIsolated(t, "librarycore/internal/infra/persistence", "librarycore/internal/core")
}

// TestOnlyBlobPackageImportsBlobInfra enforces the same layering for the
// archive stores: call sites go through the blob.Store interface.
func TestOnlyBlobPackageImportsBlobInfra(t *testing.T) {
	assertInfraIsolated(t, "librarycore/internal/infra/blob", "librarycore/internal/blob")
}

func assertInfraIsolated(t *testing.T, infraPrefix, allowedPrefix string) {
	t.Helper()
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "librarycore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		path := strings.TrimSuffix(pkg.PkgPath, ".test")
		path = strings.TrimSuffix(path, "_test")
		if strings.HasPrefix(path, allowedPrefix) || strings.HasPrefix(path, infraPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == infraPrefix || strings.HasPrefix(importPath, infraPrefix+"/") {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of infra package: %s", v)
		}
	}
}
