package main

import (
	"github.com/charlerive/mcoption/cmd"
)

func main() {
	cmd.Execute()
}
