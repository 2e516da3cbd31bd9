package main

import "github.com/diogo/finchat/internal/commands"

func main() {
	commands.Execute()
}
