// Package ingest discovers payslip PDFs on the local filesystem.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/constants"
)

// FileInfo describes one discovered payslip file.
type FileInfo struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	HashHex string
}

// DirStats aggregates one directory walk.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// Discoverer walks directories for ingestible files.
type Discoverer struct {
	logger *slog.Logger
}

func NewDiscoverer(logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{logger: logger}
}

// DiscoverDirectory walks root, skips hidden entries if requested, and
// content-hashes every matching file. A file that cannot be read is counted
// and skipped; the walk continues. Results come back in walk order, which
// is lexical and therefore stable across runs.
func (d *Discoverer) DiscoverDirectory(root string, skipHidden bool) ([]FileInfo, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileInfo
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			d.logger.Warn("walk error", "path", path, "error", walkErr)
			stats.Failed++
			return nil
		}
		if skipHidden && isHidden(path) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !constants.AllowedExt(ext) {
			return nil
		}
		stats.Matched++

		info, err := stat(path, ext)
		if err != nil {
			d.logger.Warn("skipping unreadable file", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		results = append(results, info)
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

func stat(path, ext string) (FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileInfo{}, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return FileInfo{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return FileInfo{}, fmt.Errorf("hash: %w", err)
	}
	return FileInfo{
		Path:    abs,
		Name:    filepath.Base(abs),
		Ext:     ext,
		Size:    size,
		HashHex: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
