package main

import (
	"os"

	"github.com/dshills/relnotes/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; variables already set in the environment win.
	_ = godotenv.Load()

	os.Exit(cli.Run())
}
