package main

import (
	"github.com/waygo/waygo/cmd/waygo/cmd"
)

func main() {
	cmd.Execute()
}
