// containers.go
//
// A digital academic library service: registration, catalog, borrowing and administration
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of academic-library.
// academic-library is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// academic-library is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with academic-library.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
)

const (
	postgresImage    = "docker.io/postgres:17-alpine"
	postgresDatabase = "library_test"
	postgresUser     = "library"
	postgresPassword = "library-test-password"
)

// Postgres is a running database container.
type Postgres struct {
	Container *postgres.PostgresContainer
	Host      string
	Port      string
}

// Config is a database configuration pointing at the container.
func (pg *Postgres) Config() *config.Config {
	return &config.Config{
		DBType:            "postgres",
		DBHost:            pg.Host,
		DBPort:            pg.Port,
		DBDatabase:        postgresDatabase,
		DBUser:            postgresUser,
		DBPassword:        postgresPassword,
		DBConnectionLimit: 5,
		DBLogLevel:        "silent",
	}
}

// Env is the DB_* environment matching Config.
func (pg *Postgres) Env() map[string]string {
	return map[string]string{
		"DB_TYPE":     "postgres",
		"DB_HOST":     pg.Host,
		"DB_PORT":     pg.Port,
		"DB_DATABASE": postgresDatabase,
		"DB_USER":     postgresUser,
		"DB_PASSWORD": postgresPassword,
	}
}

// Terminate stops the container. t may be nil outside of tests.
func (pg *Postgres) Terminate(t *testing.T) {
	if pg == nil || pg.Container == nil {
		return
	}
	if err := pg.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate Postgres: %v", err)
	}
}

// RequireIntegration skips t unless TEST_INTEGRATION is set.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Skipping integration test: TEST_INTEGRATION is not set")
	}
}

// StartPostgres runs a Postgres container. With a non-nil t the container is
// terminated on cleanup and failures are fatal to the test; with a nil t
// failures exit the process.
func StartPostgres(t *testing.T) *Postgres {
	return startPostgres(t)
}

func startPostgres(t *testing.T, extra ...testcontainers.ContainerCustomizer) *Postgres {
	ctx := context.Background()

	opts := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase(postgresDatabase),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	}
	container, err := postgres.Run(ctx, postgresImage, append(opts, extra...)...)
	if err != nil {
		exitWithError(t, err, "Failed to start Postgres")
	}
	pg := &Postgres{Container: container}
	if t != nil {
		t.Cleanup(func() { pg.Terminate(t) })
	}

	if pg.Host, err = container.Host(ctx); err != nil {
		exitWithError(t, err, "Failed to get Postgres host")
	}
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		exitWithError(t, err, "Failed to get Postgres port")
	}
	pg.Port = port.Port()

	logMessage(t, "Postgres ready on %s:%s", pg.Host, pg.Port)
	return pg
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
