package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlState is how the rewrite table repo treats one postgres SQLSTATE
type sqlState struct {
	code  ErrorCode
	retry bool
}

var sqlStates = map[string]sqlState{
	"23505": {code: ErrorCodeDuplicateKey},             // unique_violation
	"23502": {code: ErrorCodeValidation},               // not_null_violation
	"23514": {code: ErrorCodeValidation},               // check_violation
	"22001": {code: ErrorCodeInvalidArgument},          // string_data_right_truncation
	"22P02": {code: ErrorCodeInvalidArgument},          // invalid_text_representation
	"22P05": {code: ErrorCodeInvalidArgument},          // untranslatable_character, a NUL in an entry
	"40001": {code: ErrorCodeDB, retry: true},          // serialization_failure
	"40P01": {code: ErrorCodeDB, retry: true},          // deadlock_detected
	"55P03": {code: ErrorCodeDB, retry: true},          // lock_not_available, when lock_timeout is set
	"25006": {code: ErrorCodeUnavailable},              // read_only_sql_transaction, a replica after failover
	"57P03": {code: ErrorCodeUnavailable, retry: true}, // cannot_connect_now
}

// SQLSTATE classes used when the exact state is not listed
var sqlClasses = map[string]sqlState{
	"08": {code: ErrorCodeUnavailable, retry: true}, // connection exception
	"53": {code: ErrorCodeUnavailable},              // insufficient resources
	"23": {code: ErrorCodeValidation},               // integrity constraint
}

func classify(err error) (sqlState, bool) {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return sqlState{}, false
	}
	if st, ok := sqlStates[pe.Code]; ok {
		return st, true
	}
	if len(pe.Code) == 5 {
		if st, ok := sqlClasses[pe.Code[:2]]; ok {
			return st, true
		}
	}
	return sqlState{code: ErrorCodeDB}, true
}

// FromPostgres wraps a repo error with msg and the code its SQLSTATE maps to.
// Errors already carrying a project code keep it, anything else is ErrorCodeDB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if st, ok := classify(err); ok {
		return Wrap(err, st.code, msg)
	}
	if e, ok := As(err); ok && e.code != ErrorCodeUnknown {
		return Wrap(err, e.code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// Retryable reports whether running the failed transaction again may succeed:
// contention states, or a failure pgconn knows happened before anything was sent
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if st, ok := classify(err); ok {
		return st.retry
	}
	return pgconn.SafeToRetry(err)
}
