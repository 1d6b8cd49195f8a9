package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DoctorReport counts problems found in the state database.
type DoctorReport struct {
	IntegrityErrors []string
	InvalidValues   []string
	UnknownKeys     []string
	FixedValues     int
}

func (r DoctorReport) OK() bool {
	return len(r.IntegrityErrors) == 0 && len(r.InvalidValues) == 0
}

var knownKeys = map[string]func(string) bool{
	KeySelectedPlan: func(raw string) bool {
		var v any
		return raw == "null" || (json.Unmarshal([]byte(raw), &v) == nil && isObject(v))
	},
	KeyRecipeFavorites: func(raw string) bool {
		var ids []int64
		return json.Unmarshal([]byte(raw), &ids) == nil
	},
	KeyAuthSession: func(raw string) bool {
		var session Session
		return json.Unmarshal([]byte(raw), &session) == nil && session.Access != ""
	},
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// Doctor runs SQLite's integrity check and validates every known key. With
// fix, invalid values are deleted so they read as unset.
func (s *Store) Doctor(fix bool) (DoctorReport, error) {
	var report DoctorReport
	rows, err := s.db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return report, fmt.Errorf("integrity check: %w", err)
	}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("scan integrity check: %w", err)
		}
		if line != "ok" {
			report.IntegrityErrors = append(report.IntegrityErrors, line)
		}
	}
	if err := rows.Close(); err != nil {
		return report, fmt.Errorf("close integrity check: %w", err)
	}

	all, err := s.readAll()
	if err != nil {
		return report, err
	}
	for _, key := range sortedKeys(all) {
		valid, known := knownKeys[key]
		if !known {
			report.UnknownKeys = append(report.UnknownKeys, key)
			continue
		}
		if !valid(all[key].value) {
			report.InvalidValues = append(report.InvalidValues, key)
		}
	}

	if fix {
		for _, key := range report.InvalidValues {
			if err := s.Delete(key); err != nil {
				return report, err
			}
			report.FixedValues++
		}
	}
	return report, nil
}

func sortedKeys(m map[string]entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Backup writes a consistent copy of the database to outPath plus a
// .sha256 checksum file next to it, and returns the checksum.
func (s *Store) Backup(outPath string) (string, error) {
	if strings.TrimSpace(outPath) == "" {
		return "", fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("backup %s already exists", outPath)
	}
	if _, err := s.db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write checksum file: %w", err)
	}
	return checksum, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
