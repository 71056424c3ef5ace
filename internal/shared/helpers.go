// Package shared provides common utility functions used across multiple
// packages in the rosindex codebase.
package shared

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// SplitPathList splits an environment-style path list on the platform
// separator, dropping empty entries.
func SplitPathList(value string) []string {
	var paths []string
	for _, entry := range strings.Split(value, string(os.PathListSeparator)) {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

// SortedKeys returns the keys of a string-keyed map in sorted order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
