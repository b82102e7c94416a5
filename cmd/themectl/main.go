package main

import "github.com/codr1/themesmith/internal/cli"

func main() {
	cli.Execute()
}
