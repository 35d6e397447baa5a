package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"fsindex/app"
	"fsindex/web"
)

func main() {
	configPath := flag.String("config", "index_config.yaml", "Path to configuration file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	indexer, err := app.Open(cfg.Index.DBPath)
	if err != nil {
		log.Fatalf("Failed to open index: %v", err)
	}
	defer indexer.Close()

	searcher, err := app.NewSearcher(indexer.DBPath())
	if err != nil {
		log.Fatalf("Failed to create searcher: %v", err)
	}
	defer searcher.Close()

	server := web.NewServer(indexer, searcher, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *listenAddr != "" {
		addr = *listenAddr
	}

	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
