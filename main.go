package main

import "github.com/notargets/romfit/cmd"

func main() {
	cmd.Execute()
}
