package main

import "rom-curator/cmd"

func main() {
	cmd.Execute()
}
