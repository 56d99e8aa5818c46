package main

import "patron-manager/cmd"

func main() {
	cmd.Execute()
}
