package main

import "github.com/objstrip/deadstrip/cmd"

func main() {
	cmd.Execute()
}
