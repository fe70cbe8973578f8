package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var migrate bool
	flag.BoolVar(&migrate, "migrate", true, "run schema migrations once the database is up")
	flag.Parse()

	usage := `
Run a development Postgres for the academic library and print the DB_*
environment that points the server at it. Ctrl-C terminates the container.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-migrate=false]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"), "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v\n", err)
	}
	defer logger.Sync()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	pg := testutil.StartPostgres(nil)

	if migrate {
		db, err := database.Connect(pg.Config(), logger)
		if err != nil {
			pg.Terminate(nil)
			log.Fatalf("Failed to connect to Postgres: %v\n", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			pg.Terminate(nil)
			log.Fatalf("Failed to migrate Postgres: %v\n", err)
		}
		_ = database.Close(db)
		logger.Info("schema migrated")
	}

	env := pg.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, env[k])
	}

	sig := <-sigs
	logger.Info("terminating test containers", zap.String("signal", sig.String()))
	pg.Terminate(nil)
}
