package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dekarrin/pbe/server"
	"github.com/spf13/pflag"
)

const (
	envListen = "PBESYNTH_LISTEN_ADDRESS"
	envSecret = "PBESYNTH_TOKEN_SECRET"
	envAPIKey = "PBESYNTH_API_KEY"
	envDB     = "PBESYNTH_DATA_DIR"
)

func runServe(args []string) int {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addr := fs.StringP("addr", "a", "", "Listen address, host:port or :port (default :8080, or env "+envListen+")")
	secret := fs.StringP("secret", "s", "", "JWT signing secret (default env "+envSecret+", or a generated one-shot secret)")
	apiKey := fs.String("api-key", "", "API key clients must present to POST /login (default env "+envAPIKey+")")
	dbDir := fs.String("db", "", "Directory holding the jobs sqlite database (default env "+envDB+", or ./pbesynth-data)")
	timeout := fs.Duration("inline-timeout", 5*time.Second, "Per-request synthesis budget before a job is left running")

	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = os.Getenv(envListen)
	}
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	secretStr := *secret
	if secretStr == "" {
		secretStr = os.Getenv(envSecret)
	}
	var secretBytes []byte
	if secretStr == "" {
		secretBytes = make([]byte, 64)
		if _, err := rand.Read(secretBytes); err != nil {
			fmt.Fprintf(os.Stderr, "could not generate token secret: %s\n", err)
			return ExitInitError
		}
		log.Printf("WARN  using a generated token secret; issued tokens become invalid at shutdown")
	} else {
		secretBytes = []byte(secretStr)
	}

	keyStr := *apiKey
	if keyStr == "" {
		keyStr = os.Getenv(envAPIKey)
	}
	if keyStr == "" {
		fmt.Fprintln(os.Stderr, "an API key is required via --api-key or "+envAPIKey)
		return ExitUsageError
	}
	keyHash, err := server.HashAPIKey(keyStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not hash API key: %s\n", err)
		return ExitInitError
	}

	storageDir := *dbDir
	if storageDir == "" {
		storageDir = os.Getenv(envDB)
	}
	if storageDir == "" {
		storageDir = "./pbesynth-data"
	}
	if err := os.MkdirAll(storageDir, 0770); err != nil {
		fmt.Fprintf(os.Stderr, "could not create data directory: %s\n", err)
		return ExitInitError
	}

	srv, err := server.New(server.Config{
		APIKeyHash:    keyHash,
		Secret:        secretBytes,
		StorageDir:    storageDir,
		InlineTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start server: %s\n", err)
		return ExitInitError
	}

	log.Printf("INFO  pbesynth server listening on %s", listenAddr)
	if err := srv.ServeForever(listenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %s\n", err)
		return ExitRunError
	}
	return ExitSuccess
}
