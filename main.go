package main

import "github.com/notargets/diffchron/cmd"

func main() {
	cmd.Execute()
}
