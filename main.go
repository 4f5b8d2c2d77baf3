package main

import "streammusic/cmd"

func main() {
	cmd.Execute()
}
