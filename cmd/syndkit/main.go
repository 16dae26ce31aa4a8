package main

import "syndication-kit/internal/cli"

func main() {
	cli.Execute()
}
