package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/identity"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/storage/database"
	"github.com/trezcool/academia/storage/database/sqlxrepos"
)

var logger core.Logger

func main() {
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}
	rbLogger := logsvc.NewRollbarLogger(std, conf)
	rbLogger.Enable(false)
	logger = rbLogger

	if conf.Database.Engine != "postgres" {
		logger.Fatal("the admin CLI only manages the postgres engine (got " + conf.Database.Engine + ")")
	}

	// set up DB
	ctx := context.Background()
	if conf.Database.AdminUser != "" {
		errAndDie(database.CreateIfNotExist(ctx, conf))
	}
	db, err := database.Open(ctx, conf)
	errAndDie(err)

	// start CLI
	cli := newCommandLine(db, identity.NewService(
		sqlxrepos.NewAdminRepository(db),
		sqlxrepos.NewTeacherRepository(db),
		sqlxrepos.NewStudentRepository(db),
		identity.NewHasher(conf.Auth.HashCost),
	))
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
