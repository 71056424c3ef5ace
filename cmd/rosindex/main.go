package main

import "rosindex/internal/cli"

func main() {
	cli.Execute()
}
