package main

import "github.com/banshee-data/chopctl/cmd"

func main() {
	cmd.Execute()
}
