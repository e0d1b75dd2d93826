package main

import (
	"github.com/mvp-joe/pyskel/internal/cli"
)

func main() {
	cli.Execute()
}
