package main

import (
	"log"

	"cfdesk/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("cfdesk failed to start: %v", err)
	}
}
