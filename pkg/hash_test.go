package hashmyfiles

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetHashAlgorithm(t *testing.T) {
	testCases := []struct {
		name   string
		typeID uint16
		size   int
		valid  bool
	}{
		{"sha1", HashTypeSHA1, HashSizeSHA1, true},
		{"sha256", HashTypeSHA256, HashSizeSHA256, true},
		{"sha512", HashTypeSHA512, HashSizeSHA512, true},
		{"SHA256", HashTypeSHA256, HashSizeSHA256, true}, // case insensitive
		{"md5", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range testCases {
		algo, err := GetHashAlgorithm(tc.name)
		if tc.valid {
			if err != nil {
				t.Errorf("GetHashAlgorithm('%s') should succeed but got error: %v", tc.name, err)
				continue
			}
			if algo.TypeID != tc.typeID {
				t.Errorf("GetHashAlgorithm('%s') type ID = %d, expected %d", tc.name, algo.TypeID, tc.typeID)
			}
			if algo.Size != tc.size {
				t.Errorf("GetHashAlgorithm('%s') size = %d, expected %d", tc.name, algo.Size, tc.size)
			}
		} else {
			if err == nil {
				t.Errorf("GetHashAlgorithm('%s') should fail but succeeded", tc.name)
			}
		}
	}
}

func TestHashTypeNameRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		typeID uint16
		known  bool
	}{
		{"sha1", HashTypeSHA1, true},
		{"sha256", HashTypeSHA256, true},
		{"sha512", HashTypeSHA512, true},
		{"SHA512", HashTypeSHA512, true}, // case insensitive
		{"md5", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		typeID, ok := HashTypeFromName(tc.name)
		if ok != tc.known {
			t.Errorf("HashTypeFromName('%s') ok = %v, expected %v", tc.name, ok, tc.known)
			continue
		}
		if !tc.known {
			continue
		}
		if typeID != tc.typeID {
			t.Errorf("HashTypeFromName('%s') = %d, expected %d", tc.name, typeID, tc.typeID)
		}
		if name := HashTypeName(typeID); name != strings.ToLower(tc.name) {
			t.Errorf("HashTypeName(%d) = %s, expected %s", typeID, name, strings.ToLower(tc.name))
		}
	}

	if name := HashTypeName(999); name != "unknown" {
		t.Errorf("HashTypeName(999) = %s, expected unknown", name)
	}
}

func TestGetHashAlgorithmByType(t *testing.T) {
	algo, err := GetHashAlgorithmByType(HashTypeSHA512)
	if err != nil {
		t.Fatalf("GetHashAlgorithmByType(HashTypeSHA512) failed: %v", err)
	}
	if algo.Name != "sha512" {
		t.Errorf("Expected algorithm name 'sha512', got '%s'", algo.Name)
	}

	if _, err := GetHashAlgorithmByType(99); err == nil {
		t.Error("GetHashAlgorithmByType(99) should fail but succeeded")
	}
}

func TestHashFileToHexString(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte("The quick brown fox jumps over the lazy dog")

	filePath := filepath.Join(tempDir, "sample.dat")
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		t.Fatalf("Failed to create sample file: %v", err)
	}

	algorithm, err := GetHashAlgorithm("sha256")
	if err != nil {
		t.Fatalf("Failed to get sha256 algorithm: %v", err)
	}

	expected := sha256.Sum256(content)
	expectedHex := hex.EncodeToString(expected[:])

	digest, err := HashFileToHexString(filePath, algorithm, DefaultBlockSize)
	if err != nil {
		t.Fatalf("HashFileToHexString failed: %v", err)
	}

	if digest != expectedHex {
		t.Errorf("Digest = %s, expected %s", digest, expectedHex)
	}
	if len(digest) != 64 {
		t.Errorf("SHA-256 hex digest length = %d, expected 64", len(digest))
	}
}

func TestHashFileBlockSizeIndependence(t *testing.T) {
	tempDir := t.TempDir()

	// Content larger than the small block size so multiple reads happen
	content := make([]byte, 10000)
	for i := range content {
		content[i] = byte(i % 251)
	}

	filePath := filepath.Join(tempDir, "large.dat")
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		t.Fatalf("Failed to create sample file: %v", err)
	}

	algorithm, err := GetHashAlgorithm("sha256")
	if err != nil {
		t.Fatalf("Failed to get sha256 algorithm: %v", err)
	}

	small, err := HashFileToHexString(filePath, algorithm, 7)
	if err != nil {
		t.Fatalf("HashFileToHexString with small blocks failed: %v", err)
	}

	large, err := HashFileToHexString(filePath, algorithm, 1024*1024)
	if err != nil {
		t.Fatalf("HashFileToHexString with large blocks failed: %v", err)
	}

	if small != large {
		t.Errorf("Digest differs by block size: %s vs %s", small, large)
	}
}

func TestHashFileMissing(t *testing.T) {
	algorithm, err := GetHashAlgorithm("sha256")
	if err != nil {
		t.Fatalf("Failed to get sha256 algorithm: %v", err)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "nope.mp4"), algorithm, DefaultBlockSize); err == nil {
		t.Error("HashFile on missing file should fail but succeeded")
	}
}

func TestHashStringToHexString(t *testing.T) {
	algorithm, err := GetHashAlgorithm("sha256")
	if err != nil {
		t.Fatalf("Failed to get sha256 algorithm: %v", err)
	}

	expected := sha256.Sum256([]byte("X"))
	got := HashStringToHexString("X", algorithm)
	if got != hex.EncodeToString(expected[:]) {
		t.Errorf("HashStringToHexString('X') = %s, expected %s", got, hex.EncodeToString(expected[:]))
	}
}
