// File path: cmd/grip/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gjagils/Grip/internal/api"
	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/llm"
	"github.com/gjagils/Grip/internal/store"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("grip: .env file not loaded", "error", err)
	} else {
		logger.Info("grip: environment loaded from .env")
	}

	addr := flag.String("addr", ":8084", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	flag.Parse()

	logger.Info("grip: startup initiated", "addr", *addr, "db", *dbPath)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("grip: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider()
	logger.Info("grip: llm provider ready", "provider", provider.Name())

	server, err := api.NewServer(st, provider)
	if err != nil {
		logger.Error("grip: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("grip: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("grip: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("grip: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDBPath() string {
	if env := strings.TrimSpace(os.Getenv("GRIP_DB")); env != "" {
		return env
	}
	return filepath.Join("data", "grip.db")
}
