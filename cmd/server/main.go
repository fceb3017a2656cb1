package main

import "contracheque/internal/app/server"

func main() {
	server.Run()
}
