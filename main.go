package main

import "github.com/josephlewis42/clic/cmd"

func main() {
	cmd.Execute()
}
