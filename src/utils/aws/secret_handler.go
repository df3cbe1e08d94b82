package aws_handler

import (
	"context"
	"fmt"

	"cryptoportfolio/src/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretId)
	}
	return *result.SecretString, nil
}

// ResolveCoinGeckoAPIKey fills the CoinGecko API key from the configured secret
// when no key was given through settings or the environment.
func (s *SecretManager) ResolveCoinGeckoAPIKey(ctx context.Context, cfg *config.Config) error {
	cg := &cfg.ExternalClients.CoinGecko
	if cg.APIKey != "" || cg.APIKeySecretID == "" {
		return nil
	}

	key, err := s.GetSecretValue(ctx, cg.APIKeySecretID)
	if err != nil {
		return fmt.Errorf("resolving coingecko api key: %w", err)
	}
	cg.APIKey = key
	return nil
}
