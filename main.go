package main

import (
	"github.com/joho/godotenv"

	"devfolio/cli"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	godotenv.Load()
	cli.Execute()
}
