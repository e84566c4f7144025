package sound

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/consolelog/internal/filelock"
)

//go:embed alert.wav
var alertClip []byte

const bundledAlertName = "alert.wav"

// bundledDir is where the embedded clip is materialized for external players.
var bundledDir = func() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "consolelog")
	}
	return filepath.Join(dir, "consolelog")
}

// AlertClip returns the embedded alert sound, a 16-bit mono WAV.
func AlertClip() []byte {
	return alertClip
}

// BundledAlertPath writes the embedded clip to the user cache directory if
// it is not already there and returns its path.
func BundledAlertPath() (string, error) {
	path := filepath.Join(bundledDir(), bundledAlertName)
	if info, err := os.Stat(path); err == nil && info.Size() == int64(len(alertClip)) {
		return path, nil
	}
	if err := filelock.AtomicWrite(path, alertClip); err != nil {
		return "", fmt.Errorf("failed to write bundled alert: %w", err)
	}
	return path, nil
}
