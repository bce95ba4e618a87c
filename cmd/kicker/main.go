package main

import (
	"github.com/campuskicker/kicker-server/internal/cli"
)

func main() {
	cli.Execute()
}
