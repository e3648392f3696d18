package main

import "github.com/aikawa-h/instapipe/cmd"

func main() {
	cmd.Execute()
}
