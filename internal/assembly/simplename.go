package assembly

import (
	"errors"
	"strings"
)

var errInvalidPath = errors.New("invalid path")

// ApproximateSimpleName guesses the simple name from the file location
// without touching metadata. Native images ("Foo.ni.dll") map to "Foo".
func (asm *Assembly) ApproximateSimpleName() string {
	asm.simpleNameOnce.Do(func() {
		asm.simpleName = asm.calculateApproximateSimpleName()
	})
	return asm.simpleName
}

func (asm *Assembly) calculateApproximateSimpleName() string {
	if asm.inMemory || asm.dynamic {
		return ""
	}
	name, err := fileNameWithoutExtension(asm.location)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(name, ".ni") {
		return strings.TrimSuffix(name, ".ni")
	}
	return name
}

// fileNameWithoutExtension accepts both Windows and POSIX separators since the
// location belongs to the inspected process, not the host.
func fileNameWithoutExtension(path string) (string, error) {
	if strings.ContainsFunc(path, invalidPathRune) {
		return "", errInvalidPath
	}
	if i := strings.LastIndexAny(path, `/\:`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[:i]
	}
	return path, nil
}

func invalidPathRune(r rune) bool {
	switch r {
	case '"', '<', '>', '|':
		return true
	}
	return r < 0x20
}
