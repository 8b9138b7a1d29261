package main

import (
	"log"

	"github.com/veloria/catalog-api/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ catalog-api failed to start: %v", err)
	}
}
