package main

import "github.com/jhoicas/Backoffice-api/internal/cli"

func main() {
	cli.Execute()
}
