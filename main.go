package main

import (
	"github.com/rowfs/rowfs/cmd"
)

func main() {
	cmd.Execute()
}
