package assembly

import (
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wnxd/dmd/metadata"
)

type moduleRegistry struct {
	mu     *sync.Mutex
	logger *log.Logger
	strict bool
	loaded []metadata.Module
}

func (mr *moduleRegistry) ctor(mu *sync.Mutex, logger *log.Logger, strict bool) {
	mr.mu = mu
	mr.logger = logger
	mr.strict = strict
}

// Add appends module to the assembly. The first module added is the manifest
// module.
func (mr *moduleRegistry) Add(module metadata.Module) error {
	if module == nil {
		return metadata.ErrArgumentInvalid
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if slices.Contains(mr.loaded, module) {
		if mr.strict {
			return metadata.ErrModuleExists
		}
		mr.logger.Warn("module already loaded", "module", module.ScopeName())
		return nil
	}
	mr.loaded = append(mr.loaded, module)
	return nil
}

func (mr *moduleRegistry) Remove(module metadata.Module) error {
	if module == nil {
		return metadata.ErrArgumentInvalid
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	n := len(mr.loaded)
	mr.loaded = slices.DeleteFunc(mr.loaded, func(m metadata.Module) bool { return m == module })
	if len(mr.loaded) == n {
		if mr.strict {
			return metadata.ErrModuleNotFound
		}
		mr.logger.Warn("module not loaded", "module", module.ScopeName())
	}
	return nil
}

func (mr *moduleRegistry) Modules() []metadata.Module {
	return mr.LoadedModules()
}

func (mr *moduleRegistry) LoadedModules() []metadata.Module {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return slices.Clone(mr.loaded)
}

func (mr *moduleRegistry) ManifestModule() (metadata.Module, bool) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if len(mr.loaded) == 0 {
		return nil, false
	}
	return mr.loaded[0], true
}

// Module finds a module by scope name. Matching is case insensitive, as the
// runtime's own lookup is.
func (mr *moduleRegistry) Module(name string) (metadata.Module, bool) {
	for _, module := range mr.LoadedModules() {
		if strings.EqualFold(module.ScopeName(), name) {
			return module, true
		}
	}
	return nil, false
}
