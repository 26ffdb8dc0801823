package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgreSQLErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection_failure 08006", &pgconn.PgError{Code: "08006"}, true},
		{"too_many_connections 53300", &pgconn.PgError{Code: "53300"}, true},
		{"admin_shutdown 57P01", &pgconn.PgError{Code: "57P01"}, true},
		{"serialization_failure 40001", &pgconn.PgError{Code: "40001"}, true},
		{"lock_not_available 55P03", &pgconn.PgError{Code: "55P03"}, true},
		{"syntax_error 42601", &pgconn.PgError{Code: "42601"}, false},
		{"undefined_table 42P01", &pgconn.PgError{Code: "42P01"}, false},
		{"invalid_password 28P01", &pgconn.PgError{Code: "28P01"}, false},
		{"wrapped pg error", fmt.Errorf("connect: %w", &pgconn.PgError{Code: "08001"}), true},
		{"econnrefused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"connection refused text", errors.New("dial tcp 127.0.0.1:5432: connection refused"), true},
		{"generic", errors.New("some unrelated error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRedisErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewRedisErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"loading", errors.New("LOADING Redis is loading the dataset in memory"), true},
		{"readonly", errors.New("READONLY You can't write against a read only replica."), true},
		{"clusterdown", errors.New("CLUSTERDOWN The cluster is down"), true},
		{"max clients", errors.New("ERR max number of clients reached"), true},
		{"econnreset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"i/o timeout", errors.New("read tcp: i/o timeout"), true},
		{"wrongtype", errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
		{"noauth", errors.New("NOAUTH Authentication required."), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
