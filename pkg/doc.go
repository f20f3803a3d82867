// Package hashmyfiles provides directory scanning, media file hashing, and
// hash verification backed by a local SQLite database for file integrity
// checking over time.
//
// # Core API
//
// The main entry point is Reconciler, which owns the hash store for a
// directory for the duration of a run:
//
//	rec, err := hashmyfiles.NewReconciler("/path/to/media", "")
//	if err != nil {
//		// invalid path or store error
//	}
//	defer rec.Close()
//
// # Basic Operations
//
// Record the hashes of the current directory state:
//
//	result, err := rec.Generate()
//	fmt.Printf("added %d, updated %d\n", len(result.Added), len(result.Updated))
//
// Verify the directory against previously recorded hashes:
//
//	report, err := rec.Verify()
//	for _, m := range report.Mismatched {
//		fmt.Printf("%s [MISMATCH]\n", m.Path)
//	}
//
// # Configuration
//
// Behaviour is controlled by an optional hashmyfiles.ini file next to the
// database (see LoadConfig). Enable debug output:
//
//	hashmyfiles.SetDebugFlags("scan,hash")
//	hashmyfiles.SetVerboseLevel(2)
package hashmyfiles
