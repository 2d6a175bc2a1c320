package main

import "adventure-backend/cmd"

func main() {
	cmd.Run()
}
