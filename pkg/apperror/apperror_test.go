package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthorized("no session"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Validation("title is required"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Store(errors.New("connection reset")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestStatusSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create receipt: %w", Forbidden("Only landlords can create receipts"))
	assert.Equal(t, http.StatusForbidden, Status(err))
	assert.Equal(t, "Only landlords can create receipts", Message(err))
}

func TestStoreMessagePassesThrough(t *testing.T) {
	err := Store(errors.New(`relation "receipts" does not exist`))
	assert.True(t, errors.Is(err, ErrStore))
	assert.Equal(t, `relation "receipts" does not exist`, Message(err))
}

func TestStoreMapsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Detail: "Key (property_code)=(A1) already exists."}
	err := Store(fmt.Errorf("insert: %w", pgErr))
	assert.Equal(t, http.StatusConflict, Status(err))
	assert.Equal(t, "Key (property_code)=(A1) already exists.", Message(err))
}

func TestUnclassifiedErrorsDoNotLeak(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("secret dsn in here")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.True(t, IsNotFound(NotFound("gone")))
	assert.False(t, IsNotFound(errors.New("other")))
}
