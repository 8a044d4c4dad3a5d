package integration_test

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/metinatakli/movie-catalog/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresPort nat.Port = "5432/tcp"
	redisPort    nat.Port = "6379/tcp"
)

type PostgresContainer struct {
	Container        *postgres.PostgresContainer
	ConnectionString string
}

type RedisContainer struct {
	Container        *tcredis.RedisContainer
	ConnectionString string
}

// postgresDSN and redisAddr render the address a client uses for a mapped
// container port.
func postgresDSN(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, host, port.Port(), dbName)
}

func redisAddr(host string, port nat.Port) string {
	return fmt.Sprintf("%s:%s", host, port.Port())
}

// endpoint resolves the host side of a container port and formats it with
// render.
func endpoint(
	ctx context.Context,
	container testcontainers.Container,
	port nat.Port,
	render func(string, nat.Port) string) (string, error) {

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return "", fmt.Errorf("container port %s: %w", port, err)
	}

	return render(host, mapped), nil
}

func getDbContainer(ctx context.Context) (*PostgresContainer, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImageName,
			ExposedPorts: []string{string(postgresPort)},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(postgresPort),
				wait.ForSQL(postgresPort, "pgx", postgresDSN),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := endpoint(ctx, container, postgresPort, postgresDSN)
	if err != nil {
		return nil, err
	}

	err = database.Migrate(dsn)
	if err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}

	return &PostgresContainer{
		Container:        &postgres.PostgresContainer{Container: container},
		ConnectionString: dsn,
	}, nil
}

func getCacheContainer(ctx context.Context) (*RedisContainer, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	addr, err := endpoint(ctx, container, redisPort, redisAddr)
	if err != nil {
		return nil, err
	}

	return &RedisContainer{
		Container:        container,
		ConnectionString: addr,
	}, nil
}
