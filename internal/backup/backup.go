// Package backup produces passphrase-encrypted exports of the habit list
// and restores them.
package backup

import (
	"fmt"
	"os"

	"github.com/dukerupert/habits/internal/habit"
)

// Export encrypts the store's current habit document.
func Export(s *habit.Store, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase is required")
	}
	raw, err := habit.Encode(s.Habits())
	if err != nil {
		return nil, err
	}
	return Seal([]byte(raw), passphrase)
}

// Import decrypts an export and replaces the store's list with it.
// It returns the number of habits restored.
func Import(s *habit.Store, data []byte, passphrase string) (int, error) {
	plaintext, err := Open(data, passphrase)
	if err != nil {
		return 0, err
	}
	habits, err := habit.Decode(string(plaintext))
	if err != nil {
		return 0, err
	}
	if err := s.Replace(habits); err != nil {
		return 0, err
	}
	return len(habits), nil
}

// ExportFile writes an encrypted export to path.
func ExportFile(s *habit.Store, path, passphrase string) error {
	data, err := Export(s, passphrase)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ImportFile restores an export written by ExportFile.
func ImportFile(s *habit.Store, path, passphrase string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read export: %w", err)
	}
	return Import(s, data, passphrase)
}
