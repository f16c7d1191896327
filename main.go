package main

import (
	cmd "github.com/rohmanhakim/html2md/internal/cli"
)

func main() {
	cmd.Execute()
}
