package main

import (
	"log"

	"github.com/kilianp07/tollfee/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("tollfee: %v", err)
	}
}
