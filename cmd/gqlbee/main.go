package main

import "github.com/kndndrj/gqlbee/cli"

func main() {
	cli.Execute()
}
