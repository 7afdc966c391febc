package main

import (
	"os"

	"opens3/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
