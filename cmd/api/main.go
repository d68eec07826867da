package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title Realty API
// @version 1.0
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
