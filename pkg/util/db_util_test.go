package util_test

import (
	"testing"

	"github.com/cologi/hubcustody/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	cfg := util.PostgresDatabaseConfig{Host: "db", User: "hub custody", Password: "p@ss", Database: "hubcustody"}
	assert.Equal(t, "postgres://hub%20custody:p@ss@db:5432/hubcustody?sslmode=disable&pool_max_conns=4", cfg.ConnString())

	cfg.Port, cfg.SSLMode, cfg.PoolSize = 6543, "require", 10
	assert.Equal(t, "postgres://hub%20custody:p@ss@db:6543/hubcustody?sslmode=require&pool_max_conns=10", cfg.ConnString())
}
