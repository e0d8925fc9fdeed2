package main

import "github.com/mr-shifu/rsa-messenger/cmd/numgen/cmd"

func main() {
	cmd.Execute()
}
