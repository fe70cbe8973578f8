// stack.go
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

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	serverImage     = "academic-library-test:latest"
	serverPort      = "3000/tcp"
	dbNetworkAlias  = "db"
	stackJWTSecret  = "stack-test-secret"
	defaultContext  = "../.."
	buildContextEnv = "TESTCONTAINERS_BUILD_CONTEXT"
)

// Stack is Postgres plus the server image on a shared network.
type Stack struct {
	Network  *testcontainers.DockerNetwork
	Postgres *Postgres
	Server   testcontainers.Container
	BaseURL  string
}

// Terminate stops the server and removes the network. The database
// container is terminated by its own test cleanup.
func (s *Stack) Terminate(t *testing.T) {
	ctx := context.Background()
	if s.Server != nil {
		if err := s.Server.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate server: %v", err)
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// StartStack runs the server container against a networked Postgres. The
// image is built from the Dockerfile at TESTCONTAINERS_BUILD_CONTEXT (default
// the repository root seen from a package two levels down) unless it already
// exists locally. Extra environment is passed to the server.
func StartStack(t *testing.T, env map[string]string) *Stack {
	t.Helper()
	ctx := context.Background()
	stack := &Stack{}
	t.Cleanup(func() { stack.Terminate(t) })

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	stack.Network = nw

	stack.Postgres = startPostgres(t, network.WithNetwork([]string{dbNetworkAlias}, nw))

	serverEnv := map[string]string{
		"PORT":                   nat.Port(serverPort).Port(),
		"DB_TYPE":                "postgres",
		"DB_HOST":                dbNetworkAlias,
		"DB_PORT":                "5432",
		"DB_DATABASE":            postgresDatabase,
		"DB_USER":                postgresUser,
		"DB_PASSWORD":            postgresPassword,
		"AUTH_MODE":              "token",
		"JWT_SECRET":             stackJWTSecret,
		"LOG_FORMAT":             "console",
		"OVERDUE_SWEEP_SCHEDULE": "",
	}
	for k, v := range env {
		serverEnv[k] = v
	}

	req := testcontainers.ContainerRequest{
		ExposedPorts: []string{serverPort},
		Env:          serverEnv,
		Networks:     []string{nw.Name},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Init = boolPtr(true)
		},
		WaitingFor: wait.ForHTTP("/health").WithPort(serverPort).WithStartupTimeout(60 * time.Second),
	}

	exists, err := imageExists(ctx, serverImage)
	if err != nil {
		exitWithError(t, err, "Failed to check for the server image")
	}
	if exists {
		logMessage(t, "Image %s exists, reusing...", serverImage)
		req.Image = serverImage
	} else {
		buildContext := os.Getenv(buildContextEnv)
		if buildContext == "" {
			buildContext = defaultContext
		}
		sessionID := uuid.New().String()
		logMessage(t, "Image %s does not exist, building from %s...", serverImage, buildContext)
		req.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       "academic-library-test",
			Tag:        "latest",
			KeepImage:  true,
			BuildArgs:  map[string]*string{"RESOURCE_REAPER_SESSION_ID": &sessionID},
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}
	}

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start server")
	}
	stack.Server = server

	host, err := server.Host(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to get server host")
	}
	port, err := server.MappedPort(ctx, serverPort)
	if err != nil {
		exitWithError(t, err, "Failed to get server port")
	}
	stack.BaseURL = fmt.Sprintf("http://%s:%s", host, port.Port())
	logMessage(t, "BASE_URL=%s", stack.BaseURL)
	return stack
}

// imageExists reports whether the local daemon has imageName.
func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}
	return false, nil
}

func boolPtr(b bool) *bool { return &b }
