package main

import "pamguide/cmd"

func main() {
	cmd.Execute()
}
