// Script to materialize the built-in demo personas as JSON files, so the
// API can serve a frozen dataset instead of regenerating on each start.
// Usage: go run scripts/generate-personas/main.go [outDir]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/evida/coach-api/internal/persona"
)

func main() {
	outDir := "data"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	store := persona.NewStore("")
	index := store.List()

	if err := os.MkdirAll(filepath.Join(outDir, "personas"), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	if err := writeJSON(filepath.Join(outDir, "personas.json"), index); err != nil {
		log.Fatalf("write persona index: %v", err)
	}

	for _, p := range index {
		data, err := store.Data(p.ID)
		if err != nil {
			log.Fatalf("load persona %s: %v", p.ID, err)
		}
		path := filepath.Join(outDir, "personas", p.ID+".json")
		if err := writeJSON(path, data); err != nil {
			log.Fatalf("write persona %s: %v", p.ID, err)
		}
		fmt.Printf("wrote %s (%d days)\n", path, len(data.Data))
	}

	fmt.Printf("persona catalog written to %s\n", outDir)
}

func writeJSON(path string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(body, '\n'), 0o644)
}
