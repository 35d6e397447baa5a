package app

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("matches whole-content digest", func(t *testing.T) {
		content := "the quick brown fox"
		path := writeFile(t, dir, "small.txt", content)

		got, err := hashFile(path)
		if err != nil {
			t.Fatalf("hashFile failed: %v", err)
		}

		sum := sha256.Sum256([]byte(content))
		if want := hex.EncodeToString(sum[:]); got != want {
			t.Errorf("digest %s, want %s", got, want)
		}
	})

	t.Run("streams content larger than one chunk", func(t *testing.T) {
		content := strings.Repeat("x", hashChunkSize*3+17)
		path := writeFile(t, dir, "large.bin", content)

		got, err := hashFile(path)
		if err != nil {
			t.Fatalf("hashFile failed: %v", err)
		}

		sum := sha256.Sum256([]byte(content))
		if want := hex.EncodeToString(sum[:]); got != want {
			t.Errorf("digest %s, want %s", got, want)
		}
	})

	t.Run("missing file surfaces an error", func(t *testing.T) {
		_, err := hashFile(filepath.Join(dir, "does-not-exist"))
		if err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}
