package readstore

import (
	"errors"

	"stayhub/internal/infra"

	"github.com/jackc/pgx/v5"
)

func wrapReadErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}
