// Package typename parses reflection-style type name strings such as
// "System.Collections.Generic.Dictionary`2+Enumerator, mscorlib" and hands
// the resulting segments to a Resolver.
package typename

import (
	"errors"
	"strings"

	"github.com/wnxd/dmd/metadata"
)

var (
	ErrSyntax      = errors.New("type name syntax error")
	ErrUnsupported = errors.New("type name form unsupported")
)

// Resolver turns an optional assembly qualifier and a list of nesting
// segments ("Ns.Outer", "Inner", ...) into a type definition.
type Resolver interface {
	TypeDef(assemblyName *metadata.AssemblyName, typeNames []string) (metadata.Type, bool)
}

type Name struct {
	TypeNames    []string
	AssemblyName *metadata.AssemblyName
}

// Parse parses typeName and resolves it with r.
func Parse(r Resolver, typeName string) (metadata.Type, bool, error) {
	name, err := ParseName(typeName)
	if err != nil {
		return nil, false, err
	}
	typ, ok := r.TypeDef(name.AssemblyName, name.TypeNames)
	return typ, ok, nil
}

func ParseName(typeName string) (Name, error) {
	var (
		name    Name
		sb      strings.Builder
		escaped bool
	)
	flush := func() error {
		seg := strings.TrimSpace(sb.String())
		sb.Reset()
		if seg == "" {
			return ErrSyntax
		}
		name.TypeNames = append(name.TypeNames, seg)
		return nil
	}
	for i := 0; i < len(typeName); i++ {
		c := typeName[i]
		if escaped {
			// the leading segment is split into namespace and name later,
			// so escaped dots and backslashes stay escaped there
			if len(name.TypeNames) == 0 && (c == '.' || c == '\\') {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '+':
			if err := flush(); err != nil {
				return Name{}, err
			}
		case ',':
			if err := flush(); err != nil {
				return Name{}, err
			}
			asmName, err := ParseAssemblyName(typeName[i+1:])
			if err != nil {
				return Name{}, err
			}
			name.AssemblyName = asmName
			return name, nil
		case '[', ']', '&', '*':
			return Name{}, ErrUnsupported
		default:
			sb.WriteByte(c)
		}
	}
	if escaped {
		return Name{}, ErrSyntax
	}
	if err := flush(); err != nil {
		return Name{}, err
	}
	return name, nil
}
