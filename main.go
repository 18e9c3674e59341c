package main

import "vend-sync/cmd"

func main() {
	cmd.Execute()
}
