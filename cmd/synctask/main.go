package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/synctask-dev/synctask/db"
	"github.com/synctask-dev/synctask/internal/auth"
	"github.com/synctask-dev/synctask/internal/handlers"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/router"
	"github.com/synctask-dev/synctask/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	database, err := db.Connect(dsn)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	memberSource := os.Getenv("MEMBER_SOURCE")

	var members store.MemberDirectory

	if memberSource == handlers.MemberSourceTable {
		members = store.NewTeamTable(database)
	} else {
		members = store.NewProfileDirectory(database)
	}

	st := store.New(database, members)
	notifier := realtime.NewNotifier()
	hub := realtime.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub.Watch(ctx, notifier, realtime.TableTasks, realtime.TableLeaves)

	board := handlers.NewBoard(st, notifier)
	board.Start(ctx)
	defer board.Stop()

	h := handlers.New(st, notifier, hub, os.Getenv("DOMAIN"), memberSource)

	r := router.NewRouter(h, board, st)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
