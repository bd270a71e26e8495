package main

import "github.com/gyaneshwarpardhi/inspector/internal/cli"

func main() {
	cli.Execute()
}
