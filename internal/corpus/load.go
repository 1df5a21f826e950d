package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxLine bounds a single JSON Lines record.
const maxLine = 1 << 20

// File is the YAML corpus layout.
type File struct {
	Characters []Entry `yaml:"characters"`
}

// LoadFile reads the entries of a corpus file, choosing the format by
// extension: .yaml and .yml are YAML, anything else is JSON Lines. Malformed
// JSON lines are skipped and counted.
func LoadFile(path string) ([]Entry, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err := loadYAML(path)
		return entries, 0, err
	default:
		return loadJSONL(path)
	}
}

func loadJSONL(path string) ([]Entry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening corpus file: %w", err)
	}
	defer file.Close()

	var (
		entries   []Entry
		malformed int
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			malformed++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading corpus file: %w", err)
	}
	return entries, malformed, nil
}

func loadYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing corpus file: %w", err)
	}
	return f.Characters, nil
}
