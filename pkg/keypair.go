package pkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudflare/circl/sign/ed25519"
)

// DefaultKeypairPath is $ANCHOR_WALLET, falling back to the solana CLI default.
func DefaultKeypairPath() string {
	if path, ok := os.LookupEnv("ANCHOR_WALLET"); ok && path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "solana", "id.json")
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

// LoadKeypair reads a keypair file holding a JSON array of the 64 secret key
// bytes (seed followed by public key).
func LoadKeypair(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file %s: %w", path, err)
	}

	var numbers []int
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, fmt.Errorf("invalid keypair file %s: %w", path, err)
	}
	secret := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("invalid keypair file %s: byte %d out of range", path, i)
		}
		secret[i] = byte(n)
	}
	if len(secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid keypair file %s: expected %d bytes, got %d", path, ed25519.PrivateKeySize, len(secret))
	}

	key := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if string(key[ed25519.SeedSize:]) != string(secret[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("invalid keypair file %s: public key does not match seed", path)
	}
	return key, nil
}

// SaveKeypair writes key in the format LoadKeypair reads.
func SaveKeypair(path string, key ed25519.PrivateKey) error {
	numbers := make([]int, len(key))
	for i, b := range key {
		numbers[i] = int(b)
	}
	raw, err := json.Marshal(numbers)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
