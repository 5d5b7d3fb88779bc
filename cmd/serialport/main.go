package main

import "github.com/allbin/go-serialport/internal/cli"

func main() {
	cli.Execute()
}
