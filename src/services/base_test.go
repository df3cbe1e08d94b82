package services_test

import (
	"context"
	"testing"

	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/services"

	"github.com/stretchr/testify/require"
)

const mockDataDir = "../clients/marketdata/testdata"

type testServices struct {
	client    *marketdata.MockClient
	repos     *repositories.Repositories
	assets    *services.AssetService
	portfolio *services.PortfolioService
	analytics *services.AnalyticsService
	users     *services.UserService
	snapshots *services.SnapshotService
}

func setupServices(t *testing.T) *testServices {
	client, err := marketdata.NewMockClient(mockDataDir)
	require.NoError(t, err)

	repos := repositories.NewMemoryRepositories()
	assets := services.NewAssetService(client)
	portfolio := services.NewPortfolioService(repos.Users, repos.Holdings, assets)
	return &testServices{
		client:    client,
		repos:     repos,
		assets:    assets,
		portfolio: portfolio,
		analytics: services.NewAnalyticsService(client),
		users:     services.NewUserService(repos.Users),
		snapshots: services.NewSnapshotService(repos.Users, repos.Snapshots, portfolio),
	}
}

func (s *testServices) createUser(t *testing.T, name string) *schemas.UserResponse {
	user, err := s.users.Create(context.Background(), schemas.CreateUserRequest{
		Name:  name,
		Email: name + "@example.com",
		Age:   30,
	})
	require.NoError(t, err)
	return user
}
