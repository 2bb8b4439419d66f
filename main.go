package main

import "github.com/Raamakrishnan/ulog/internal/cmd"

func main() {
	cmd.Execute()
}
