package main

import "github.com/hardik88t/puredry/internal/cmd"

func main() {
	cmd.Execute()
}
