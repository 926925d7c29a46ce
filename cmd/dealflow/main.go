package main

import (
	"github.com/nsventures/dealflow-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
