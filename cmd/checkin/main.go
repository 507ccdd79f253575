package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bnema/checkin-cli/cmd"
)

func main() {
	// Optional: local runs keep credentials in a .env file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
