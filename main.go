package main

import "github.com/iksnae/gemini-session/cmd"

func main() {
	cmd.Execute()
}
