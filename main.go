package main

import "github.com/ipergamali/BloomBuddy/cmd/bloombuddy"

func main() {
	bloombuddy.Execute()
}
