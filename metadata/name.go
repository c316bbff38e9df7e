package metadata

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

type Version struct {
	Major, Minor, Build, Revision uint16
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// AssemblyName identifies an assembly. A nil PublicKeyToken means the token
// is unspecified; a non-nil empty one means the assembly is unsigned.
type AssemblyName struct {
	Name           string
	Version        *Version
	CultureName    string
	PublicKey      []byte
	PublicKeyToken []byte
	Flags          AssemblyNameFlags
	HashAlgorithm  AssemblyHashAlgorithm
}

// Clone returns a deep copy; the receiver may be nil.
func (n *AssemblyName) Clone() *AssemblyName {
	if n == nil {
		return nil
	}
	c := *n
	if n.Version != nil {
		v := *n.Version
		c.Version = &v
	}
	c.PublicKey = cloneBytes(n.PublicKey)
	c.PublicKeyToken = cloneBytes(n.PublicKeyToken)
	return &c
}

// cloneBytes keeps the nil/empty distinction of b.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}

func (n *AssemblyName) ProcessorArchitecture() AssemblyNameFlags {
	return n.Flags.ProcessorArchitecture()
}

// String formats the display name, e.g. "mscorlib, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089".
func (n *AssemblyName) String() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Name)
	if n.Version != nil {
		sb.WriteString(", Version=")
		sb.WriteString(n.Version.String())
	}
	sb.WriteString(", Culture=")
	if n.CultureName == "" {
		sb.WriteString("neutral")
	} else {
		sb.WriteString(n.CultureName)
	}
	sb.WriteString(", PublicKeyToken=")
	if token := n.Token(); len(token) == 0 {
		sb.WriteString("null")
	} else {
		sb.WriteString(hex.EncodeToString(token))
	}
	if n.Flags.Has(AssemblyNameRetargetable) {
		sb.WriteString(", Retargetable=Yes")
	}
	return sb.String()
}

// Token returns the public key token, deriving it from PublicKey when no
// token is set: the last 8 bytes of the key's SHA-1 hash, reversed. The
// result is nil when neither is known.
func (n *AssemblyName) Token() []byte {
	if n.PublicKeyToken != nil {
		return n.PublicKeyToken
	} else if len(n.PublicKey) == 0 {
		return nil
	}
	sum := sha1.Sum(n.PublicKey)
	token := make([]byte, 8)
	for i := range token {
		token[i] = sum[len(sum)-1-i]
	}
	return token
}

// AssemblyNameEqual reports whether two names identify the same assembly.
// Simple names and cultures compare case-insensitively; version and public
// key token only take part when both sides state them. An explicit empty
// token (PublicKeyToken=null) only matches another unsigned name.
func AssemblyNameEqual(a, b *AssemblyName) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}
	if !strings.EqualFold(a.Name, b.Name) {
		return false
	}
	if !strings.EqualFold(normalizeCulture(a.CultureName), normalizeCulture(b.CultureName)) {
		return false
	}
	if a.Version != nil && b.Version != nil && *a.Version != *b.Version {
		return false
	}
	if ta, tb := a.Token(), b.Token(); ta != nil && tb != nil && !bytes.Equal(ta, tb) {
		return false
	}
	return true
}

func normalizeCulture(culture string) string {
	if strings.EqualFold(culture, "neutral") {
		return ""
	}
	return culture
}
