package main

import (
	"predator/internal/app"

	"github.com/charmbracelet/log"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal("predator-ignore terminated", "error", err)
	}
}
