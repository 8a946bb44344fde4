package main

import "adventuremap/cmd/amap/root"

func main() {
	root.Execute()
}
