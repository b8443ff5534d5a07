package main

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/identity"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	svc      *identity.Service
	validate *core.Validator
	out      io.Writer
}

func newCommandLine(db *sqlx.DB, svc *identity.Service) *commandLine {
	return &commandLine{db: db, svc: svc, validate: core.NewValidator(), out: os.Stdout}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...]                          - run a goose command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  addadmin --name NAME --email EMAIL                 - create an admin or reset its password")
	fmt.Fprintln(cli.out, "  resetpassword --class CLASS --email EMAIL          - reset an admin|teacher|student password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := pflag.NewFlagSet("addadmin", pflag.ContinueOnError)
	addAdminCmd.SetOutput(cli.out)
	addAdminName := addAdminCmd.String("name", "", "The admin's name.")
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")

	resetPasswordCmd := pflag.NewFlagSet("resetpassword", pflag.ContinueOnError)
	resetPasswordCmd.SetOutput(cli.out)
	resetPasswordClass := resetPasswordCmd.String("class", "", "The account class: admin, teacher or student.")
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The account's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])

	case "addadmin":
		if err := parse(addAdminCmd, args[2:]); err != nil {
			return err
		}
		if *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminName, *addAdminEmail, pwd)

	case "resetpassword":
		if err := parse(resetPasswordCmd, args[2:]); err != nil {
			return err
		}
		if *resetPasswordClass == "" || *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordClass, *resetPasswordEmail, pwd)

	default:
		cli.printUsage()
		return errHelp
	}
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
