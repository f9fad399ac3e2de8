package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	return path
}

func TestValidateSeed_Valid(t *testing.T) {
	path := writeSeed(t, `{
		"name": "Spring Bracket",
		"matches": [
			{"player1": "alice", "player2": "bob", "diskCount": 4},
			{"player1": "carol", "player2": "dave", "diskCount": 6}
		]
	}`)

	result := validateSeed(path)
	if !result.Valid {
		t.Errorf("Expected valid seed, got errors: %v", result.Errors)
	}
	if result.File != "seed.json" {
		t.Errorf("Expected file name seed.json, got %s", result.File)
	}
}

func TestValidateSeed_InvalidJSON(t *testing.T) {
	path := writeSeed(t, `{"name": "broken", matches}`)

	result := validateSeed(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if !containsError(result.Errors, "Invalid JSON") {
		t.Errorf("Expected JSON error, got: %v", result.Errors)
	}
}

func TestValidateSeed_DiskCountOutOfRange(t *testing.T) {
	path := writeSeed(t, `{
		"name": "bad disks",
		"matches": [{"player1": "alice", "player2": "bob", "diskCount": 12}]
	}`)

	result := validateSeed(path)
	if result.Valid {
		t.Error("Expected invalid result for out-of-range disk count")
	}
	if !containsError(result.Errors, "diskCount 12") {
		t.Errorf("Expected disk count error, got: %v", result.Errors)
	}
}

func TestValidateSeed_DuplicatePlayers(t *testing.T) {
	t.Run("across matches", func(t *testing.T) {
		path := writeSeed(t, `{
			"name": "dupes",
			"matches": [
				{"player1": "alice", "player2": "bob", "diskCount": 4},
				{"player1": "alice", "player2": "carol", "diskCount": 4}
			]
		}`)

		result := validateSeed(path)
		if result.Valid {
			t.Error("Expected invalid result for cross-match duplicate")
		}
		if !containsError(result.Errors, "already seeded") {
			t.Errorf("Expected duplicate error, got: %v", result.Errors)
		}
	})

	t.Run("within a match", func(t *testing.T) {
		path := writeSeed(t, `{
			"name": "self match",
			"matches": [{"player1": "alice", "player2": "alice", "diskCount": 4}]
		}`)

		result := validateSeed(path)
		if result.Valid {
			t.Error("Expected invalid result when both slots hold the same name")
		}
	})
}

func TestValidateSeed_EmptySeed(t *testing.T) {
	path := writeSeed(t, `{"name": "empty", "matches": []}`)

	result := validateSeed(path)
	if result.Valid {
		t.Error("Expected invalid result for empty seed")
	}
}

func containsError(errors []string, substr string) bool {
	for _, e := range errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
