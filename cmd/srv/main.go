package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var server srv

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Cannot load the env file: %v", err)
	}

	server.loadApp()
	if err := server.app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
