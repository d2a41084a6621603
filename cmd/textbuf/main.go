package main

import (
	"github.com/textbuf/textbuf/internal/cli"
)

func main() {
	cli.Execute()
}
