package scanner

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one scanned PDF on disk.
type FileInfo struct {
	Filename string    `json:"filename"`
	SizeMiB  float64   `json:"size_mib"`
	Modified time.Time `json:"modified"`
}

// ListDocuments enumerates the scanned PDFs in dir, newest first. A missing
// directory yields an empty list.
func ListDocuments(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	docs := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, FileInfo{
			Filename: entry.Name(),
			SizeMiB:  math.Round(float64(info.Size())/(1024*1024)*100) / 100,
			Modified: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Modified.Equal(docs[j].Modified) {
			return docs[i].Filename > docs[j].Filename
		}
		return docs[i].Modified.After(docs[j].Modified)
	})
	return docs, nil
}
