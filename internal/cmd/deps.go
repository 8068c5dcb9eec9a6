package cmd

import (
	"os"

	"github.com/joho/godotenv"
)

var (
	envGet      = os.Getenv
	readEnvFile = godotenv.Read
)
