package dirmigrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampFormat is the version prefix of newly created migrations. Hyphens are stripped when the
// version is derived, so the version is a sortable 14-digit number.
const timestampFormat = "2006-01-02-150405"

const (
	upTemplate   = "-- Your SQL goes here\n"
	downTemplate = "-- This file should undo anything in `up.sql`\n"
)

// Create writes a new migration directory named <timestamp>_<name> inside dir, with starter up.sql
// and down.sql scripts. It returns the path of the new directory.
func Create(dir, name string, t time.Time) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("migration name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("migration name must not contain a path separator: %q", name)
	}
	name = strings.ReplaceAll(name, " ", "_")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create migrations directory: %w", err)
	}
	target := filepath.Join(dir, t.UTC().Format(timestampFormat)+"_"+name)
	if err := os.Mkdir(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create migration: %w", err)
	}
	files := []struct {
		name, body string
	}{
		{UpFile, upTemplate},
		{DownFile, downTemplate},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(target, f.name), []byte(f.body), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return target, nil
}
