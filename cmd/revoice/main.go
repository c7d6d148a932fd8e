package main

import "github.com/olegsv/revoice/internal/cli"

func main() {
	cli.Main()
}
