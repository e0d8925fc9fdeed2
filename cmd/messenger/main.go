package main

import "github.com/mr-shifu/rsa-messenger/cmd/messenger/cmd"

func main() {
	cmd.Execute()
}
