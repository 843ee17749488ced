package main

import "github.com/philipparndt/fieldmap/cmd"

func main() {
	cmd.Execute()
}
