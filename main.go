package main

import "github.com/BrunoTulio/safesync/cmd"

func main() {
	cmd.Execute()
}
