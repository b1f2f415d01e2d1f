package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"fitChallengeEngine/internal/cli"
	"fitChallengeEngine/services"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	services.InitPrometheus()
}

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
