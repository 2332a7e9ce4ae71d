package main

import (
	"github.com/shadowhunt/shadowhunt-go/internal/cli"
)

func main() {
	cli.Execute()
}
