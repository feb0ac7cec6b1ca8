package database

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB builds the client the snapshot repositories write through.
// Configuration comes from the environment so the same binary runs against
// AWS or a local container:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional, e.g. http://dynamodb:8000)
func ConnectDynamoDB() *dynamodb.Client {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		log.Fatalf("[database] dynamodb config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		envOr("AWS_ACCESS_KEY_ID", "local"),
		envOr("AWS_SECRET_ACCESS_KEY", "local"),
		"",
	)

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(envOr("AWS_REGION", "us-east-1")),
		config.WithCredentialsProvider(creds),
	}

	if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		opts = append(opts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
