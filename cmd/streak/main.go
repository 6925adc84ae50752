package main

import "streakling/cmd/streak/root"

func main() {
	root.Execute()
}
