package main

import (
	"github.com/metalkit/netrecon/cmd"
)

func main() {
	cmd.Execute()
}
