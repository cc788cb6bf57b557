package main

import "github.com/rauf-alluviam/auto-rack-sub000/cmd"

func main() {
	cmd.Execute()
}
