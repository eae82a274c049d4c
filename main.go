package main

import "github.com/user/video-trim-cli/cmd"

func main() {
	cmd.Execute()
}
