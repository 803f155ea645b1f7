package main

import "eprdesc/cmd"

func main() {
	cmd.Execute()
}
