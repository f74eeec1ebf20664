package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
