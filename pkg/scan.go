package hashmyfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// scanner enumerates files under a root directory whose extension is in a
// case-insensitive allow-list. Results are streamed in sorted order; a scan
// is single use.
type scanner struct {
	rootDir    string
	extensions map[string]bool
	skipFiles  map[string]bool // absolute paths never yielded (database, config)
}

// newScanner creates a scanner for rootDir. Fails with ErrInvalidPath if
// rootDir does not exist or is not a directory.
func newScanner(rootDir string, extensions []string, skipFiles []string) (*scanner, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", rootDir, ErrInvalidPath)
	}

	extSet := make(map[string]bool)
	for _, ext := range normaliseExtensions(extensions) {
		extSet[ext] = true
	}

	skipSet := make(map[string]bool)
	for _, skip := range skipFiles {
		skipSet[filepath.Clean(skip)] = true
	}

	return &scanner{
		rootDir:    absRoot,
		extensions: extSet,
		skipFiles:  skipSet,
	}, nil
}

// matchesExtension reports whether a filename passes the allow-list
func (s *scanner) matchesExtension(name string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// scanPath walks the root directory and sends matching absolute file paths
// via resultChan in sorted order, streaming results as they are found.
// Inaccessible subdirectories are skipped rather than aborting the scan.
func (s *scanner) scanPath(resultChan chan<- string) error {
	defer close(resultChan)

	pathQueue := []string{s.rootDir}

	for len(pathQueue) > 0 {
		// Always process the first path (lexicographically smallest)
		currentPath := pathQueue[0]
		pathQueue = pathQueue[1:]

		info, err := os.Lstat(currentPath)
		if err != nil {
			continue // Skip inaccessible paths
		}

		if info.IsDir() {
			entries, err := os.ReadDir(currentPath)
			if err != nil {
				continue
			}

			// Sort entries for consistent ordering
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Name() < entries[j].Name()
			})

			var newPaths []string
			for _, entry := range entries {
				newPaths = append(newPaths, filepath.Join(currentPath, entry.Name()))
			}

			// Insert new paths into queue maintaining sorted order
			pathQueue = insertSorted(pathQueue, newPaths)

		} else if info.Mode().IsRegular() {
			if s.skipFiles[currentPath] {
				continue
			}
			if !s.matchesExtension(currentPath) {
				continue
			}

			if IsDebugEnabled("scan") {
				VerboseLog(3, "scanPath: found file %s", currentPath)
			}
			resultChan <- currentPath
		}
	}

	return nil
}

// insertSorted inserts new paths into an existing sorted slice maintaining order
func insertSorted(existing []string, newPaths []string) []string {
	if len(newPaths) == 0 {
		return existing
	}

	sort.Strings(newPaths)

	if len(existing) == 0 {
		return newPaths
	}

	// Merge the two sorted slices
	result := make([]string, 0, len(existing)+len(newPaths))

	i, j := 0, 0
	for i < len(existing) && j < len(newPaths) {
		if existing[i] <= newPaths[j] {
			result = append(result, existing[i])
			i++
		} else {
			result = append(result, newPaths[j])
			j++
		}
	}

	result = append(result, existing[i:]...)
	result = append(result, newPaths[j:]...)

	return result
}
