package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/identity"
)

// addAdmin creates an admin, or resets the password of the admin already holding email.
func (cli *commandLine) addAdmin(name, email, pwd string) error {
	ctx := context.Background()
	na := identity.NewAdmin{Name: name, Email: email, Password: pwd}
	na.Clean()
	if err := cli.validate.Struct(na); err != nil {
		return err
	}

	if _, err := cli.svc.GetAdmin(ctx, identity.GetFilter{Email: na.Email}); err != nil {
		if errors.Cause(err) != core.ErrNotFound {
			return err
		}
		_, err = cli.svc.CreateAdmin(ctx, na)
		return err
	}
	return cli.svc.ResetPassword(ctx, auth.RoleAdmin, na.Email, na.Password)
}

func (cli *commandLine) resetPassword(class, email, pwd string) error {
	role, err := auth.ParseRole(class)
	if err != nil {
		return err
	}
	email = core.CleanString(email, true /* lower */)
	if err = cli.validate.Var(email, "required,email"); err != nil {
		return errors.Wrapf(err, "invalid email %q", email)
	}
	return cli.svc.ResetPassword(context.Background(), role, email, pwd)
}
