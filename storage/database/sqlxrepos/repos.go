// Package sqlxrepos implements the repositories on Postgres with sqlx.
package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

const (
	pqIntegrityClass = "23" // integrity_constraint_violation
	pqOperatorClass  = "57" // operator_intervention: admin/crash shutdown, cannot connect now
)

// trapErr maps missing rows to core.ErrNotFound, integrity violations to core.ConstraintError
// and a database going away to a shutdown error.
func trapErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return core.ErrNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code.Class() {
		case pqIntegrityClass:
			return core.NewConstraintError(pqErr.Constraint, pqErr.Message)
		case pqOperatorClass:
			return core.NewShutdownError(msg + ": database unavailable: " + pqErr.Message)
		}
	}
	return errors.Wrap(err, msg)
}

func checkAffected(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func int64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
