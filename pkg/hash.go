package hashmyfiles

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	TypeID  uint16
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	switch strings.ToLower(name) {
	case "sha1":
		return &HashAlgorithm{
			Name:    "sha1",
			TypeID:  HashTypeSHA1,
			Size:    HashSizeSHA1,
			NewFunc: func() hash.Hash { return sha1.New() },
		}, nil
	case "sha256":
		return &HashAlgorithm{
			Name:    "sha256",
			TypeID:  HashTypeSHA256,
			Size:    HashSizeSHA256,
			NewFunc: func() hash.Hash { return sha256.New() },
		}, nil
	case "sha512":
		return &HashAlgorithm{
			Name:    "sha512",
			TypeID:  HashTypeSHA512,
			Size:    HashSizeSHA512,
			NewFunc: func() hash.Hash { return sha512.New() },
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
}

// GetHashAlgorithmByType returns the hash algorithm configuration for the given type ID
func GetHashAlgorithmByType(typeID uint16) (*HashAlgorithm, error) {
	name := HashTypeName(typeID)
	if name == "unknown" {
		return nil, fmt.Errorf("%w: type ID %d", ErrUnsupportedAlgorithm, typeID)
	}
	return GetHashAlgorithm(name)
}

// HashFile calculates the hash of a file by streaming its content through the
// algorithm in blockSize chunks. Memory use is bounded by blockSize regardless
// of file size.
func HashFile(filePath string, algorithm *HashAlgorithm, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := algorithm.NewFunc()
	buffer := make([]byte, blockSize)

	for {
		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read from file %s: %w", filePath, err)
		}
	}

	return hasher.Sum(nil), nil
}

// HashFileToHexString calculates the hash of a file and returns it as a hex string
func HashFileToHexString(filePath string, algorithm *HashAlgorithm, blockSize int) (string, error) {
	hashBytes, err := HashFile(filePath, algorithm, blockSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hashBytes), nil
}

// HashStringToHexString calculates the hash of a string and returns it as a hex string
func HashStringToHexString(data string, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
