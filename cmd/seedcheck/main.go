// Command seedcheck validates tournament seed JSON files before import.
// A seed file describes the bracket an operator wants to load: one entry
// per match with player names and a disk count. It checks:
//   - JSON structure and required fields
//   - Disk counts within the playable range
//   - Non-empty, distinct player names within a match
//   - No player name appearing in more than one match
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dinesh-mca12/tohnew/game/hanoi"
)

// Seed mirrors the JSON schema for a tournament seed file.
type Seed struct {
	Name    string      `json:"name"`
	Matches []SeedMatch `json:"matches"`
}

// SeedMatch is one planned match in the seed.
type SeedMatch struct {
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	DiskCount int    `json:"diskCount"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateSeed loads and validates a single seed JSON file.
func validateSeed(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(seed.Matches) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Seed has no matches")
		return result
	}

	seen := map[string]int{}
	playerCount := 0

	for i, m := range seed.Matches {
		if m.DiskCount < hanoi.MinDiskCount || m.DiskCount > hanoi.MaxDiskCount {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Match %d: diskCount %d outside range %d-%d", i+1, m.DiskCount, hanoi.MinDiskCount, hanoi.MaxDiskCount))
		}

		p1 := strings.TrimSpace(m.Player1)
		p2 := strings.TrimSpace(m.Player2)
		for _, name := range []string{p1, p2} {
			if name == "" {
				continue
			}
			playerCount++
			if prev, dup := seen[name]; dup {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Match %d: player %q already seeded in match %d", i+1, name, prev))
			}
			seen[name] = i + 1
		}
		if p1 != "" && p1 == p2 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Match %d: both slots hold %q", i+1, p1))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", seed.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Matches: %d", len(seed.Matches)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seeded players: %d", playerCount))
	}

	return result
}

// main validates every seed file given on the command line (or *.json in
// the seeds directory by default) and exits non-zero if any is invalid.
func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob(filepath.Join("seeds", "*.json"))
		if err != nil || len(files) == 0 {
			fmt.Println("Usage: seedcheck <seed.json> [...]")
			os.Exit(1)
		}
	}

	allValid := true
	for _, file := range files {
		result := validateSeed(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All seed files are valid!")
	} else {
		fmt.Println("❌ Some seed files have errors")
		os.Exit(1)
	}
}
