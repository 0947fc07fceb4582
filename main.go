package main

import "github.com/voxfeld/reel/internal/cli"

func main() {
	cli.Execute()
}
