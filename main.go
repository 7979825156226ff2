package main

import (
	"log"

	"camdeck/v0/cmd"
	dotenv "github.com/joho/godotenv"
)

// Set during compile time via ldflags.
var version = "dev"

func main() {
	// The .env file is optional, every setting has a default or a flag.
	if err := dotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v\n", err)
	}

	if err := cmd.Execute(version); err != nil {
		log.Fatal(err)
	}
}
