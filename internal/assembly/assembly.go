package assembly

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wnxd/dmd/metadata"
)

// Assembly is the lazily computed model of one loaded assembly. Module
// bookkeeping and the attribute cache share mu; the name cache is lock-free.
type Assembly struct {
	mu       sync.Mutex
	domain   metadata.Domain
	reader   metadata.Reader
	location string
	inMemory bool
	dynamic  bool
	logger   *log.Logger

	simpleNameOnce sync.Once
	simpleName     string

	moduleRegistry
	nameResolver
	attributeCache
}

var _ metadata.Assembly = (*Assembly)(nil)

func New(domain metadata.Domain, reader metadata.Reader, location string, opts ...Option) (*Assembly, error) {
	if domain == nil {
		return nil, fmt.Errorf("domain: %w", metadata.ErrArgumentInvalid)
	} else if reader == nil {
		return nil, fmt.Errorf("reader: %w", metadata.ErrArgumentInvalid)
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	asm := &Assembly{
		domain:   domain,
		reader:   reader,
		location: location,
		inMemory: cfg.InMemory,
		dynamic:  cfg.Dynamic,
		logger:   cfg.Logger,
	}
	asm.moduleRegistry.ctor(&asm.mu, cfg.Logger, cfg.Strict)
	asm.nameResolver.ctor(reader, cfg.Logger)
	asm.attributeCache.ctor(&asm.mu)
	return asm, nil
}

func (asm *Assembly) Domain() metadata.Domain {
	return asm.domain
}

func (asm *Assembly) Location() string {
	return asm.location
}

func (asm *Assembly) IsInMemory() bool {
	return asm.inMemory
}

func (asm *Assembly) IsDynamic() bool {
	return asm.dynamic
}

func (asm *Assembly) ImageRuntimeVersion() string {
	return asm.reader.ImageRuntimeVersion()
}

func (asm *Assembly) EntryPoint() (metadata.Method, bool) {
	m := asm.reader.EntryPoint()
	return m, m != nil
}

func (asm *Assembly) String() string {
	return asm.FullName()
}
