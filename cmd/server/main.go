package main

import "bizops/internal/app/server"

func main() {
	server.Run()
}
