// Command admin_report prints ledger statistics and the result of a ledger
// audit for the configured store. With -hash it instead prints a bcrypt hash
// suitable for ADMIN_KEY_HASH.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"btcwallet/internal/config"
	"btcwallet/internal/logging"
	"btcwallet/internal/models"
	"btcwallet/internal/services/admin"
	"btcwallet/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type report struct {
	Statistics *models.Statistics `json:"statistics" yaml:"statistics"`
	Audit      *admin.AuditReport `json:"audit" yaml:"audit"`
	Drift      int64              `json:"drift" yaml:"drift"`
	Balanced   bool               `json:"balanced" yaml:"balanced"`
}

func main() {
	format := flag.String("format", "json", "output format: json or yaml")
	adminKey := flag.String("admin-key", "", "admin key, defaults to ADMIN_KEY")
	hash := flag.String("hash", "", "print the bcrypt hash of this key and exit")
	flag.Parse()

	if *hash != "" {
		out, err := bcrypt.GenerateFromPassword([]byte(*hash), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to hash key:", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.SetOutput(os.Stderr)

	if *adminKey == "" {
		*adminKey = cfg.Admin.Key
	}
	if cfg.Storage == config.StorageMemory {
		log.Warn("memory storage selected, the report covers an empty ledger")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer backend.Close()

	authorizer, err := admin.NewKeyAuthorizer(cfg.Admin.Key, cfg.Admin.KeyHash)
	if err != nil {
		log.WithError(err).Fatal("failed to build admin authorizer")
	}
	svc := admin.NewService(backend.Store, authorizer, log)

	stats, err := svc.GetStatistics(ctx, *adminKey)
	if err != nil {
		log.WithError(err).Fatal("failed to read statistics")
	}
	audit, err := svc.Audit(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to audit ledger")
	}

	r := report{
		Statistics: stats,
		Audit:      audit,
		Drift:      audit.Drift(),
		Balanced:   audit.Balanced(),
	}
	if err := write(os.Stdout, *format, r); err != nil {
		log.WithError(err).Fatal("failed to write report")
	}
	if !r.Balanced {
		os.Exit(2)
	}
}

func write(w io.Writer, format string, r report) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
