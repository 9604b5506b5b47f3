package main

import (
	"log"

	"github.com/tplfill/tpl-fill/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
