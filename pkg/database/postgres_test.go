package database

import (
	"testing"

	"servicehub/pkg/utils"
)

func TestConnString(t *testing.T) {
	got := ConnString(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "servicehub",
		User:     "app",
		Password: "p@ss word",
	})

	want := "postgres://app:p%40ss%20word@db:5432/servicehub?sslmode=disable"
	if got != want {
		t.Fatalf("ConnString() = %q, want %q", got, want)
	}
}
