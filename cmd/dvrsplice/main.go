package main

import "github.com/enhoshen/dvrsplice/internal/cli"

func main() {
	cli.Main()
}
