package database

import (
	"context"
	"fmt"

	appconfig "checkout_service/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewAWSConfig builds the SDK config shared by every AWS client.
//
// Local-friendly:
//   - static credentials are used when AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY
//     are set, or ("local","local") when a custom endpoint is configured;
//     otherwise the default credential chain applies
//   - DYNAMODB_ENDPOINT (e.g. http://dynamodb:8000) targets DynamoDB only
//   - AWS_ENDPOINT (e.g. http://localstack:4566) targets every other service
func NewAWSConfig(ctx context.Context, c appconfig.AWS) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
	}

	accessKey, secretKey := c.AccessKeyID, c.SecretAccessKey
	if (accessKey == "" || secretKey == "") && (c.Endpoint != "" || c.DynamoDBEndpoint != "") {
		// Local emulators do not validate credentials, but the SDK requires them.
		accessKey, secretKey = "local", "local"
	}
	if accessKey != "" && secretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	if c.Endpoint != "" || c.DynamoDBEndpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if url := endpointFor(c, service); url != "" {
				return aws.Endpoint{URL: url, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func endpointFor(c appconfig.AWS, service string) string {
	if service == dynamodb.ServiceID && c.DynamoDBEndpoint != "" {
		return c.DynamoDBEndpoint
	}
	return c.Endpoint
}

// ConnectDynamoDB creates the DynamoDB client used by the order and payment repositories.
func ConnectDynamoDB(cfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg)
}
