package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"w3dash/cmd"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: w3dash <battletag>  (e.g. w3dash \"Name#1234\")")
		os.Exit(2)
	}
	playerID := os.Args[1]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx, playerID); err != nil {
		log.Fatal("Application error: ", err)
	}
}
