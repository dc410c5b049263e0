package main

import "github.com/san-kum/tightbind/internal/cli"

func main() {
	cli.RunStandalone("graphene")
}
