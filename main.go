package main

import (
	"github.com/ckv-io/ckv/cmd"
)

func main() {
	cmd.Execute()
}
