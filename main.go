package main

import "github.com/pders01/checkpoint/cmd"

func main() {
	cmd.Execute()
}
