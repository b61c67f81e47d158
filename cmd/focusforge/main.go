package main

import (
	"github.com/mchmarny/focusforge/pkg/cli"
)

func main() {
	cli.Execute()
}
