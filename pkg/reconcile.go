package hashmyfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileError records a file that could not be read; the scan continues past it
type FileError struct {
	Path string
	Err  error
}

// GenerateResult represents the outcome of a Generate run
type GenerateResult struct {
	Added      []string
	Updated    []string
	Unchanged  []string
	Unreadable []FileError
}

// Mismatch records a file whose current digest differs from the stored one
type Mismatch struct {
	Path     string
	Expected string // stored digest
	Actual   string // freshly computed digest
}

// VerifyResult represents the outcome of a Verify run
type VerifyResult struct {
	OK         []string
	Mismatched []Mismatch
	Unknown    []string // files on disk with no stored record
	Unreadable []FileError
}

// Clean returns true if every scanned file verified OK
func (vr *VerifyResult) Clean() bool {
	return len(vr.Mismatched) == 0 && len(vr.Unknown) == 0 && len(vr.Unreadable) == 0
}

// Reconciler compares freshly computed digests against the persisted hash
// store for a directory and resolves discrepancies. The store connection is
// held open for the duration of a run and released by Close.
type Reconciler struct {
	RootDir string

	config    *Config
	store     *HashStore
	algorithm *HashAlgorithm
	blockSize int
}

// NewReconciler creates a reconciler for rootDir. dbPath overrides the
// database location when non-empty; otherwise the configured filename inside
// rootDir is used. Overrides are config "key:value" pairs applied on top of
// the loaded configuration.
func NewReconciler(rootDir, dbPath string, overrides ...string) (*Reconciler, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", rootDir, ErrInvalidPath)
	}

	config, err := LoadConfig(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if len(overrides) > 0 {
		if err := config.ApplyOverrides(overrides); err != nil {
			return nil, err
		}
	}

	allConfig := config.GetAllConfig()

	// Config-file verbosity applies unless the CLI already raised it
	if GetVerboseLevel() == 0 && allConfig.Verbose.Level > 0 {
		SetVerboseLevel(allConfig.Verbose.Level)
	}
	if debugFlags == nil && allConfig.Verbose.Debug != "" {
		SetDebugFlags(allConfig.Verbose.Debug)
	}

	if err := ValidateHashAlgorithm(allConfig.Hash.Default); err != nil {
		return nil, err
	}
	if err := ValidateExtensions(allConfig.Scanner.Extensions); err != nil {
		return nil, err
	}

	algorithm, err := GetHashAlgorithm(allConfig.Hash.Default)
	if err != nil {
		return nil, err
	}

	blockSize, err := ParseHumanSize(allConfig.Performance.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("invalid block_size: %w", err)
	}

	if dbPath == "" {
		dbPath = filepath.Join(absRoot, allConfig.Store.File)
	} else if !filepath.IsAbs(dbPath) {
		// The scanner compares absolute paths when skipping the database,
		// so a relative override must be resolved before the store opens it
		dbPath, err = filepath.Abs(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path %s: %w", dbPath, err)
		}
	}

	store, err := OpenStore(dbPath)
	if err != nil {
		return nil, err
	}

	return &Reconciler{
		RootDir:   absRoot,
		config:    config,
		store:     store,
		algorithm: algorithm,
		blockSize: blockSize,
	}, nil
}

// Config returns the loaded configuration
func (r *Reconciler) Config() *Config {
	return r.config
}

// Store returns the open hash store
func (r *Reconciler) Store() *HashStore {
	return r.store
}

// Close releases the hash store connection
func (r *Reconciler) Close() error {
	return r.store.Close()
}

// newScanner builds a scanner that skips the database (and its SQLite
// sidecar files) and the config file.
func (r *Reconciler) newScanner() (*scanner, error) {
	dbPath := r.store.Path()
	skip := []string{
		dbPath,
		dbPath + "-wal",
		dbPath + "-shm",
		dbPath + "-journal",
		filepath.Join(r.RootDir, ConfigFile),
	}
	return newScanner(r.RootDir, r.config.GetScannerConfig().Extensions, skip)
}

// scanFiles starts a streaming scan and returns the result channel
func (r *Reconciler) scanFiles() (<-chan string, error) {
	sc, err := r.newScanner()
	if err != nil {
		return nil, err
	}

	resultChan := make(chan string, 50)
	go func() {
		if err := sc.scanPath(resultChan); err != nil {
			fmt.Fprintf(os.Stderr, "Scan error: %v\n", err)
		}
	}()

	return resultChan, nil
}

// Generate computes the digest of every scanned file and updates the store:
// unknown paths are inserted, changed digests overwritten, unchanged files
// left untouched. Re-running on an unchanged directory mutates nothing.
func (r *Reconciler) Generate() (*GenerateResult, error) {
	resultChan, err := r.scanFiles()
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{}

	// On a store failure keep receiving until the channel closes, otherwise
	// the scan goroutine blocks forever once the channel buffer fills
	var fatalErr error
	for path := range resultChan {
		if fatalErr != nil {
			continue
		}

		digest, err := HashFileToHexString(path, r.algorithm, r.blockSize)
		if err != nil {
			VerboseLog(1, "skipping unreadable file %s: %v", path, err)
			result.Unreadable = append(result.Unreadable, FileError{Path: path, Err: err})
			continue
		}

		record, err := r.store.Get(path)
		if err != nil {
			fatalErr = err
			continue
		}

		switch {
		case record == nil:
			if err := r.store.Upsert(&FileRecord{
				Path:     path,
				Hash:     digest,
				HashType: r.algorithm.TypeID,
				LastSeen: time.Now(),
			}); err != nil {
				fatalErr = err
				continue
			}
			result.Added = append(result.Added, path)

		case record.Hash != digest || record.HashType != r.algorithm.TypeID:
			VerboseLog(1, "hash changed for %s: %s -> %s", path, record.Hash, digest)
			if err := r.store.Upsert(&FileRecord{
				Path:     path,
				Hash:     digest,
				HashType: r.algorithm.TypeID,
				LastSeen: time.Now(),
			}); err != nil {
				fatalErr = err
				continue
			}
			result.Updated = append(result.Updated, path)

		default:
			result.Unchanged = append(result.Unchanged, path)
		}
	}
	if fatalErr != nil {
		return nil, fatalErr
	}

	return result, nil
}

// Verify computes the digest of every scanned file and compares it against
// the stored record. Files without a record are reported as unknown. The
// store is never mutated, so records for files deleted from disk are
// retained and simply not reported.
func (r *Reconciler) Verify() (*VerifyResult, error) {
	resultChan, err := r.scanFiles()
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{}

	// On a store failure keep receiving until the channel closes, otherwise
	// the scan goroutine blocks forever once the channel buffer fills
	var fatalErr error
	for path := range resultChan {
		if fatalErr != nil {
			continue
		}

		record, err := r.store.Get(path)
		if err != nil {
			fatalErr = err
			continue
		}

		// Hash with the algorithm the record was created with, so a config
		// change does not turn every stored record into a mismatch
		algorithm := r.algorithm
		if record != nil && record.HashType != algorithm.TypeID {
			algorithm, err = GetHashAlgorithmByType(record.HashType)
			if err != nil {
				fatalErr = err
				continue
			}
		}

		digest, err := HashFileToHexString(path, algorithm, r.blockSize)
		if err != nil {
			VerboseLog(1, "cannot verify unreadable file %s: %v", path, err)
			result.Unreadable = append(result.Unreadable, FileError{Path: path, Err: err})
			continue
		}

		switch {
		case record == nil:
			result.Unknown = append(result.Unknown, path)
		case record.Hash == digest:
			result.OK = append(result.OK, path)
		default:
			result.Mismatched = append(result.Mismatched, Mismatch{
				Path:     path,
				Expected: record.Hash,
				Actual:   digest,
			})
		}
	}
	if fatalErr != nil {
		return nil, fatalErr
	}

	return result, nil
}
