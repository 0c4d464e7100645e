package main

import "github.com/gdshowcase/gd-showcase/cmd"

func main() {
	cmd.Execute()
}
