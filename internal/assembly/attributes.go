package assembly

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/wnxd/dmd/metadata"
)

const (
	assemblyAlgorithmIDAttribute = "System.Reflection.AssemblyAlgorithmIdAttribute"
	assemblyFlagsAttribute       = "System.Reflection.AssemblyFlagsAttribute"
)

type attributeCache struct {
	mu   *sync.Mutex
	list atomic.Pointer[[]metadata.CustomAttributeData]
}

func (ac *attributeCache) ctor(mu *sync.Mutex) {
	ac.mu = mu
}

// get returns the cached list, running fetch at most once.
func (ac *attributeCache) get(fetch func() []metadata.CustomAttributeData) []metadata.CustomAttributeData {
	if list := ac.list.Load(); list != nil {
		return *list
	}
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if list := ac.list.Load(); list != nil {
		return *list
	}
	list := slices.Clip(fetch())
	ac.list.Store(&list)
	return list
}

// CustomAttributesData returns the assembly-level attributes including the
// synthesized ones. The returned slice is shared and must not be modified.
func (asm *Assembly) CustomAttributesData() []metadata.CustomAttributeData {
	return asm.attributeCache.get(func() []metadata.CustomAttributeData {
		cas := asm.reader.ReadCustomAttributes(metadata.AssemblyToken)
		list := AddPseudoCustomAttributes(asm.Name(), cas)
		asm.logger.Debug("custom attributes loaded", "assembly", asm.ApproximateSimpleName(), "count", len(list))
		return list
	})
}

// AddPseudoCustomAttributes returns cas extended with attributes implied by
// the assembly name: the hash algorithm and the non-architecture name flags.
// cas itself is not modified.
func AddPseudoCustomAttributes(name *metadata.AssemblyName, cas []metadata.CustomAttributeData) []metadata.CustomAttributeData {
	res := slices.Clone(cas)
	if name == nil {
		return res
	}
	if name.HashAlgorithm != metadata.HashNone && !hasAttribute(cas, assemblyAlgorithmIDAttribute) {
		res = append(res, pseudoAttribute(assemblyAlgorithmIDAttribute, uint32(name.HashAlgorithm)))
	}
	flags := name.Flags &^ metadata.PA_FullMask
	if flags.Has(metadata.AssemblyNameRetargetable) || flags&metadata.ContentTypeMask != 0 {
		if !hasAttribute(cas, assemblyFlagsAttribute) {
			res = append(res, pseudoAttribute(assemblyFlagsAttribute, uint32(flags)))
		}
	}
	return res
}

func pseudoAttribute(typ string, value uint32) metadata.CustomAttributeData {
	return metadata.CustomAttributeData{
		AttributeType: typ,
		Arguments:     []metadata.CustomAttributeTypedArgument{{Type: "System.UInt32", Value: value}},
		Synthesized:   true,
	}
}

func hasAttribute(cas []metadata.CustomAttributeData, typ string) bool {
	return slices.ContainsFunc(cas, func(ca metadata.CustomAttributeData) bool { return ca.AttributeType == typ })
}
