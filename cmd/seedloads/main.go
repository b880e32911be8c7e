package main

import (
	"log"

	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/seed"
)

// seedloads provisions a starter load board for fresh deployments. It is
// a no-op when the configured loads file already exists.
func main() {
	cfg := config.Load()
	if err := seed.EnsureLoadsFile(cfg.LoadsFile); err != nil {
		log.Fatalf("seed load board: %v", err)
	}
	log.Printf("load board ready at %s", cfg.LoadsFile)
}
