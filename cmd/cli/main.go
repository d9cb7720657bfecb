package main

import "sms-tagger/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
