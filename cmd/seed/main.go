package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"lcenhub/internal/config"
	"lcenhub/internal/db"
	"lcenhub/internal/store"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing collections with the defaults")
	flag.Parse()

	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	var kv store.KV
	switch cfg.StoreDriver {
	case "memory":
		log.Fatal("STORE_DRIVER=memory has nothing to seed")
	case "mysql":
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := store.Migrate(gormDB); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		kv = store.NewGormKV(gormDB)
	default:
		gormDB, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		if err := store.Migrate(gormDB); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		kv = store.NewGormKV(gormDB)
	}
	log.Println("Connected to store")

	seeded, skipped := 0, 0
	seedOne := func(key string, value any) {
		if !*force {
			if _, ok, err := kv.Get(key); err != nil {
				log.Fatalf("Failed to read %s: %v", key, err)
			} else if ok {
				log.Printf("Skipping %s: already present (use -force to overwrite)", key)
				skipped++
				return
			}
		}
		if err := store.SaveCollectionValue(kv, key, value); err != nil {
			log.Fatalf("Failed to write %s: %v", key, err)
		}
		log.Printf("Seeded %s", key)
		seeded++
	}

	seedOne(store.KeyAccounts, store.DefaultAccounts())
	seedOne(store.KeyAuditLog, store.DefaultAuditLog())
	seedOne(store.KeyReminders, store.DefaultReminders())
	seedOne(store.KeyMarketStocks, store.DefaultMarketStocks())
	seedOne(store.KeyChatSessions, store.DefaultChatSessions())
	seedOne(store.KeyBackupEmail, store.DefaultBackupEmail)

	log.Printf("Seed completed: %d written, %d skipped", seeded, skipped)
}
