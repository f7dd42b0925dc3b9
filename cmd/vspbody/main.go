package main

import "github.com/notargets/VSPBody/cmd"

func main() {
	cmd.Execute()
}
