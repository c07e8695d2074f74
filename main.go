package main

import "vessel-manager/cmd"

func main() {
	cmd.Execute()
}
