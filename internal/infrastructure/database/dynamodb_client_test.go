package database

import (
	"context"
	"testing"

	appconfig "checkout_service/internal/config"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointFor(t *testing.T) {
	c := appconfig.AWS{Endpoint: "http://localstack:4566", DynamoDBEndpoint: "http://dynamodb:8000"}
	assert.Equal(t, "http://dynamodb:8000", endpointFor(c, dynamodb.ServiceID))
	assert.Equal(t, "http://localstack:4566", endpointFor(c, sns.ServiceID))

	c.DynamoDBEndpoint = ""
	assert.Equal(t, "http://localstack:4566", endpointFor(c, dynamodb.ServiceID))
}

func TestNewAWSConfig_LocalCredentials(t *testing.T) {
	cfg, err := NewAWSConfig(context.Background(), appconfig.AWS{Region: "eu-central-1", DynamoDBEndpoint: "http://localhost:8000"})
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", creds.AccessKeyID)
}
