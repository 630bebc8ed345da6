package main

import "github.com/emiliopalmerini/worklog/internal/cli"

func main() {
	cli.Execute()
}
