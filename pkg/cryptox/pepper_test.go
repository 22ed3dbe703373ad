package cryptox

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrentFirstHashSharesOnePepper(t *testing.T) {
	// Fresh path, nothing loaded: the state right after deploy, when the
	// first logins arrive together.
	pepperPath := filepath.Join(t.TempDir(), "pepper")
	SetPepperPath(pepperPath)
	t.Cleanup(func() { SetPepperPath(filepath.Join(os.TempDir(), "panel-test-pepper")) })

	const goroutines = 16

	var wg sync.WaitGroup
	hashes := make([]string, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hashes[i], errs[i] = HashPassword("p1")
		}(i)
	}
	wg.Wait()

	// Every hash must verify afterwards: all goroutines hashed with the
	// pepper that actually ended up in the file.
	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.NoError(t, VerifyPassword("p1", hashes[i]))
	}

	onDisk, err := os.ReadFile(pepperPath)
	require.NoError(t, err)
	require.Equal(t, string(onDisk), GetPepper())
}

func TestGetPepperRereadsExistingFile(t *testing.T) {
	pepperPath := filepath.Join(t.TempDir(), "pepper")
	t.Cleanup(func() { SetPepperPath(filepath.Join(os.TempDir(), "panel-test-pepper")) })

	SetPepperPath(pepperPath)
	first := GetPepper()

	// A new process (simulated by resetting) must read the same value
	// back instead of generating a fresh one.
	SetPepperPath(pepperPath)
	require.Equal(t, first, GetPepper())
}
