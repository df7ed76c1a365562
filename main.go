package main

import (
	"log"

	"github.com/GundamHarshaReddy/Hackokai1/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
