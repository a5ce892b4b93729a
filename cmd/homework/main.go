package main

import (
	"context"
	"homework-assist/cmd/homework/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
