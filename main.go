package main

import "cliptrim/cmd"

func main() {
	cmd.Execute()
}
