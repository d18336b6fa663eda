package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

var spriteExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".pdf"}

// DefaultWorkers returns the number of physical cores, falling back to the
// logical CPU count when the host does not report it
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// FindLatestSprite returns the most recently modified sprite sheet in dir
func FindLatestSprite(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isSprite(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no sprite sheets found in %s", dir)
	}

	return latestFile, nil
}

func isSprite(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range spriteExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
