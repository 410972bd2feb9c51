package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cskiro/claude-md-bench/internal/cli"
)

func main() {
	// A .env in the working directory can supply provider API keys; a missing
	// file is not an error.
	_ = godotenv.Load()
	os.Exit(cli.Run())
}
