package main

import (
	"context"

	"github.com/trezcool/academia/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	return gooseRunFunc(context.Background(), cli.db, args[0], args[1:]...)
}
