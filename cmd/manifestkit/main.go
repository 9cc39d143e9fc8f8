package main

import (
	"flag"
	"fmt"
	"os"

	"manifestkit/internal/config"
	"manifestkit/internal/edit"
	"manifestkit/internal/logger"
)

func main() {
	// 1. Parse command-line arguments
	inPath := flag.String("i", "", "Input manifest path (.mpd or .m3u8)")
	outPath := flag.String("o", "", "Output path (default: stdout)")
	planPath := flag.String("c", "edits.json", "Path to the edit plan file")
	logLevel := flag.String("L", "info", "Log level (error, warn, info, debug)")
	flag.Parse()

	// 2. Initialize logger
	log := logger.NewLogger(*logLevel)

	if *inPath == "" {
		log.Errorf("No input manifest given, use -i")
		os.Exit(1)
	}

	// 3. Load the manifest and the edit plan
	raw, err := os.ReadFile(*inPath)
	if err != nil {
		log.Errorf("Failed to read manifest: %v", err)
		os.Exit(1)
	}

	plan, err := config.LoadPlan(*planPath)
	if err != nil {
		log.Errorf("Failed to load edit plan: %v", err)
		os.Exit(1)
	}
	log.Infof("Applying plan %q (%d edits) to %s", plan.Name, len(plan.Edits), *inPath)

	// 4. Apply the plan and write the result
	out, err := edit.Apply(string(raw), plan, log)
	if err != nil {
		log.Errorf("Failed to apply plan: %v", err)
		os.Exit(1)
	}

	if *outPath == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
		log.Errorf("Failed to write output: %v", err)
		os.Exit(1)
	}
	log.Infof("Wrote edited manifest to %s", *outPath)
}
