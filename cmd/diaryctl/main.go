// Command diaryctl is the operator tool for the food diary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/andypowell00/food-notes-ui/internal/cli"
	"github.com/andypowell00/food-notes-ui/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Service: "diaryctl", Pretty: true, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewApp(log).Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "diaryctl:", err)
		stop()
		os.Exit(1)
	}
}
