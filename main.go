package main

import (
	"os"

	"civicsync-client/commands"
)

func main() {
	os.Exit(commands.Execute())
}
