package main

import "github.com/northcutted/analyze-code/cmd"

func main() {
	cmd.Execute()
}
