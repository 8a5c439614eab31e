package main

import "github.com/igreja-site/cms-backend/cmd/postlint/commands"

func main() {
	commands.Execute()
}
