package main

import "logsummary/internal/cmd"

func main() {
	cmd.Execute()
}
