package typename

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wnxd/dmd/metadata"
)

// ParseAssemblyName parses a display name such as
// "Foo, Version=1.2.3.4, Culture=neutral, PublicKeyToken=null".
func ParseAssemblyName(displayName string) (*metadata.AssemblyName, error) {
	parts := splitUnescaped(displayName, ',')
	simple := unescape(unquote(strings.TrimSpace(parts[0])))
	if simple == "" {
		return nil, fmt.Errorf("%w: empty assembly name", ErrSyntax)
	}
	name := &metadata.AssemblyName{Name: simple}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, strings.TrimSpace(part))
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		switch strings.ToLower(key) {
		case "version":
			v, err := parseVersion(value)
			if err != nil {
				return nil, err
			}
			name.Version = v
		case "culture":
			if !strings.EqualFold(value, "neutral") {
				name.CultureName = value
			}
		case "publickeytoken":
			if strings.EqualFold(value, "null") {
				name.PublicKeyToken = []byte{}
				continue
			}
			b, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: public key token: %v", ErrSyntax, err)
			}
			name.PublicKeyToken = b
		case "publickey":
			if strings.EqualFold(value, "null") {
				continue
			}
			b, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: public key: %v", ErrSyntax, err)
			}
			name.PublicKey = b
			name.Flags |= metadata.AssemblyNamePublicKey
		case "retargetable":
			if strings.EqualFold(value, "yes") {
				name.Flags |= metadata.AssemblyNameRetargetable
			}
		case "contenttype":
			if strings.EqualFold(value, "windowsruntime") {
				name.Flags |= metadata.ContentTypeWindowsRuntime
			}
		}
	}
	return name, nil
}

func parseVersion(s string) (*metadata.Version, error) {
	fields := strings.Split(s, ".")
	if len(fields) < 2 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: version %q", ErrSyntax, s)
	}
	var parts [4]uint16
	for i, f := range fields {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: version %q", ErrSyntax, s)
		}
		parts[i] = uint16(n)
	}
	return &metadata.Version{Major: parts[0], Minor: parts[1], Build: parts[2], Revision: parts[3]}, nil
}

func splitUnescaped(s string, sep byte) []string {
	var (
		parts   []string
		start   int
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
