package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	// Pepper is loaded from a file, or generated on first use. The Once
	// guard means every hash in the process sees the same pepper even
	// when the first logins race.
	pepper     string
	pepperOnce sync.Once
	pepperFile string
)

// SetPepperPath configures where the pepper lives. Call before any
// hashing; it resets the loaded pepper, so it is also the test hook for
// pointing at a fresh file.
func SetPepperPath(file string) {
	pepperFile = file
	pepper = ""
	pepperOnce = sync.Once{}
}

func GetPepper() string {
	pepperOnce.Do(func() {
		loaded, err := loadOrGeneratePepper()
		if err != nil {
			slog.Error("failed to load or generate pepper", slog.Any("err", err))
			os.Exit(1)
		}
		pepper = loaded
	})

	return pepper
}

// loadOrGeneratePepper loads the pepper from a file or generates one if not
// found. The file is created with O_EXCL so two processes pointed at the
// same path cannot each persist a different pepper; the loser rereads the
// winner's file.
func loadOrGeneratePepper() (string, error) {
	cleaned := filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(cleaned), 0750); err != nil {
		return "", err
	}

	pepperBytes, err := os.ReadFile(cleaned)
	if err == nil {
		return string(pepperBytes), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	generated := make([]byte, keyLength)
	if _, err := rand.Read(generated); err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(generated)

	f, err := os.OpenFile(cleaned, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			pepperBytes, err := os.ReadFile(cleaned)
			if err != nil {
				return "", err
			}
			return string(pepperBytes), nil
		}
		return "", err
	}

	if _, err := f.Write([]byte(encoded)); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return encoded, nil
}
