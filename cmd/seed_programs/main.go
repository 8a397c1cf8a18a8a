package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/trainwise-backend/internal/data/db"
	"github.com/yungbote/trainwise-backend/internal/data/repos/program"
	"github.com/yungbote/trainwise-backend/internal/pkg/dbctx"
	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

// programFile maps a custom program goal to its search phrases:
//
//	programs:
//	  hyrox prep: [sled push, wall ball, farmers carry]
type programFile struct {
	Programs map[string][]string `yaml:"programs"`
	Inactive []string            `yaml:"inactive"`
}

func main() {
	var file string
	var dryRun bool
	flag.StringVar(&file, "file", "", "YAML file of program goals and phrases")
	flag.BoolVar(&dryRun, "dry-run", false, "print the programs without writing")
	flag.Parse()
	if file == "" {
		fmt.Println("-file is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("read %s: %v\n", file, err)
		os.Exit(1)
	}
	var pf programFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		fmt.Printf("decode %s: %v\n", file, err)
		os.Exit(1)
	}
	goals := make([]string, 0, len(pf.Programs))
	for g := range pf.Programs {
		goals = append(goals, g)
	}
	sort.Strings(goals)
	if dryRun {
		for _, g := range goals {
			fmt.Printf("%s: %v\n", g, pf.Programs[g])
		}
		return
	}

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log, db.PostgresConfigFromEnv())
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	defer pg.Close()
	if err := db.AutoMigrateAll(pg.DB()); err != nil {
		log.Error("Postgres automigrate failed", "error", err)
		os.Exit(1)
	}

	inactive := map[string]bool{}
	for _, g := range pf.Inactive {
		inactive[g] = true
	}
	repo := program.NewRepo(pg.DB(), log)
	dbc := dbctx.New(context.Background())
	for _, g := range goals {
		if _, err := repo.Upsert(dbc, g, pf.Programs[g], !inactive[g]); err != nil {
			log.Error("Program upsert failed", "goal", g, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Program keywords seeded", "programs", len(goals))
}
