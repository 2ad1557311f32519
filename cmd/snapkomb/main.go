// Package main runs the deck draw-order analyzer.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	snapkomb "github.com/busarovalex/snap-kombination/internal/cmd/snapkomb"
)

func main() {
	cfg, err := snapkomb.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SNAPKOMB] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := snapkomb.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
}
