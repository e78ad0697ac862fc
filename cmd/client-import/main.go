package main

import (
	"flag"
	"log"
	"os"

	"github.com/TradeForce/TF-Backend/internal/clientimport"
	"github.com/joho/godotenv"
)

func main() {
	var (
		csvPath   = flag.String("csv", "", "path to client store CSV export")
		dbURL     = flag.String("db", "", "Postgres DSN (default: env DATABASE_URL)")
		tenant    = flag.String("tenant", "", "tenant ID to import into (required)")
		namespace = flag.String("namespace", "", "UUID namespace (required, stable forever)")
		wipe      = flag.Bool("wipe", false, "DANGER: deletes the tenant's client stores before importing")
	)

	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dbURL == "" {
		*dbURL = os.Getenv("DATABASE_URL")
	}
	if *csvPath == "" || *dbURL == "" || *tenant == "" || *namespace == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := clientimport.Config{
		CSVPath:     *csvPath,
		DatabaseURL: *dbURL,
		TenantID:    *tenant,
		Namespace:   *namespace,
		Wipe:        *wipe,
	}

	if err := clientimport.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
