package main

import "github.com/TMCabrera/indycargo/cmd/indycar/cmd"

func main() {
	cmd.Execute()
}
