package main

import "github.com/Taichi-iskw/tagscribe/cmd"

func main() {
	cmd.Execute()
}
