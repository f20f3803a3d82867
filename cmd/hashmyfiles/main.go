package main

import (
	"fmt"
	"os"
	"strconv"

	hashmyfiles "github.com/berobloom/hashmyfiles/pkg"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	// Handle help and version early
	if os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help" {
		showHelp()
		return
	}

	if os.Args[1] == "--version" {
		fmt.Printf("hashmyfiles %s\n", getVersionString())
		return
	}

	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashmyfiles: %v\n", err)
		os.Exit(1)
	}

	if args.Verbose > 0 {
		hashmyfiles.SetVerboseLevel(args.Verbose)
	}
	if args.Debug != "" {
		hashmyfiles.SetDebugFlags(args.Debug)
	}

	rec, err := hashmyfiles.NewReconciler(args.Dir, args.DBPath, args.Overrides...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashmyfiles: %v\n", err)
		os.Exit(1)
	}
	switch args.Mode {
	case "generate":
		err = runGenerate(rec)
	case "verify":
		err = runVerify(rec)
	}

	// Close before any exit so the database checkpoints its WAL sidecars
	closeErr := rec.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashmyfiles: %v\n", err)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "hashmyfiles: %v\n", closeErr)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: hashmyfiles {-g|-v} DIRECTORY [options]\n")
	fmt.Fprintf(os.Stderr, "Try 'hashmyfiles --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("hashmyfiles - generate and verify media file hashes\n\n")
	fmt.Printf("Usage: hashmyfiles {-g|-v} DIRECTORY [options]\n\n")

	fmt.Printf("MODES:\n")
	fmt.Printf("  -g DIRECTORY      Generate hashes for media files under DIRECTORY\n")
	fmt.Printf("  -v DIRECTORY      Verify media files against stored hashes\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  --db FILE         Hash database path (default: DIRECTORY/%s)\n", hashmyfiles.DatabaseFile)
	fmt.Printf("  --verbose N       Verbose level 0-3\n")
	fmt.Printf("  --debug FLAGS     Comma-separated debug flags (scan, hash, store)\n")
	fmt.Printf("  -o key:value      Config override, repeatable\n")
	fmt.Printf("                    (default, extensions, file, block_size, level, debug)\n")
	fmt.Printf("  --help            Show this help\n")
	fmt.Printf("  --version         Show version\n\n")

	fmt.Printf("CONFIGURATION:\n")
	fmt.Printf("  An optional %s file inside DIRECTORY controls the hash\n", hashmyfiles.ConfigFile)
	fmt.Printf("  algorithm, extension allow-list, database filename and block size.\n\n")

	fmt.Printf("EXAMPLES:\n")
	fmt.Printf("  hashmyfiles -g /srv/media                  # Record hashes\n")
	fmt.Printf("  hashmyfiles -v /srv/media                  # Check for corruption\n")
	fmt.Printf("  hashmyfiles -g /srv/media -o extensions:.mp4,.mkv,.avi\n")
}

// Arguments represents parsed command line arguments
type Arguments struct {
	Mode      string // "generate" or "verify"
	Dir       string
	DBPath    string
	Verbose   int
	Debug     string
	Overrides []string
}

func parseArguments(args []string) (*Arguments, error) {
	result := &Arguments{}

	i := 0
	for i < len(args) {
		switch args[i] {
		case "-g", "-v":
			if result.Mode != "" {
				return nil, fmt.Errorf("only one of -g or -v may be given")
			}
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a directory argument", args[i])
			}
			if args[i] == "-g" {
				result.Mode = "generate"
			} else {
				result.Mode = "verify"
			}
			result.Dir = args[i+1]
			i += 2

		case "--db":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--db requires a file argument")
			}
			result.DBPath = args[i+1]
			i += 2

		case "--verbose":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--verbose requires a level argument")
			}
			level, err := strconv.Atoi(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid verbose level: %s", args[i+1])
			}
			if err := hashmyfiles.ValidateVerboseLevel(level); err != nil {
				return nil, err
			}
			result.Verbose = level
			i += 2

		case "--debug":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--debug requires a flags argument")
			}
			result.Debug = args[i+1]
			i += 2

		case "-o", "--override":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a key:value argument", args[i])
			}
			result.Overrides = append(result.Overrides, args[i+1])
			i += 2

		default:
			return nil, fmt.Errorf("unknown option: %s", args[i])
		}
	}

	if result.Mode == "" {
		return nil, fmt.Errorf("one of -g or -v is required")
	}

	return result, nil
}

func runGenerate(rec *hashmyfiles.Reconciler) error {
	result, err := rec.Generate()
	if err != nil {
		return err
	}

	for _, path := range result.Added {
		fmt.Printf("Generated hash for: %s\n", path)
	}
	for _, path := range result.Updated {
		fmt.Printf("Updated hash for: %s\n", path)
	}
	for _, unreadable := range result.Unreadable {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", unreadable.Path, unreadable.Err)
	}

	fmt.Printf("Done: %d added, %d updated, %d unchanged, %d unreadable\n",
		len(result.Added), len(result.Updated), len(result.Unchanged), len(result.Unreadable))
	return nil
}

func runVerify(rec *hashmyfiles.Reconciler) error {
	result, err := rec.Verify()
	if err != nil {
		return err
	}

	for _, path := range result.OK {
		fmt.Printf("%s [OK]\n", path)
	}
	for _, path := range result.Unknown {
		fmt.Printf("%s [UNKNOWN]\n", path)
	}
	for _, mismatch := range result.Mismatched {
		fmt.Printf("%s [MISMATCH]\n", mismatch.Path)
	}
	for _, unreadable := range result.Unreadable {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", unreadable.Path, unreadable.Err)
	}

	if len(result.Mismatched) > 0 {
		fmt.Printf("\n%d mismatched files:\n", len(result.Mismatched))
		for _, mismatch := range result.Mismatched {
			fmt.Printf("File: %s\n", mismatch.Path)
			fmt.Printf("Expected hash: %s\n", mismatch.Expected)
			fmt.Printf("File hash: %s\n\n", mismatch.Actual)
		}
	}

	if result.Clean() {
		fmt.Printf("\nNo corrupted files found\n")
	}
	return nil
}
