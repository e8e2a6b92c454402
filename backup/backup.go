// Package backup writes sidecar copies of files before they are
// rewritten in place.
package backup

import (
	"fmt"
	"os"
)

// maxNumbered caps the .bak.N search so a pathological directory cannot
// make Create loop forever.
const maxNumbered = 100

// Create copies the file at path to path.bak and returns the backup
// path. If path.bak already exists, numbered variants (.bak.1, .bak.2)
// are tried so earlier backups are never overwritten.
func Create(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	mode := info.Mode().Perm()

	candidate := path + ".bak"
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		if n > maxNumbered {
			return "", fmt.Errorf("no free backup name for %s after %d attempts", path, maxNumbered)
		}
		candidate = fmt.Sprintf("%s.bak.%d", path, n)
	}

	if err := os.WriteFile(candidate, data, mode); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", candidate, err)
	}
	return candidate, nil
}
