// Package aws wraps the AWS SDK clients the storefront uses: SNS for domain
// events, CloudWatch for metrics and log shipping, and Secrets Manager for
// credentials.
package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Settings selects the region and, for LocalStack, a custom endpoint.
type Settings struct {
	Region   string
	Endpoint string
}

// LoadAWSConfig loads the default credential chain. When Endpoint is set every
// service client built from the config targets it instead of AWS.
func LoadAWSConfig(ctx context.Context, s Settings) (sdkaws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if s.Region != "" {
		opts = append(opts, config.WithRegion(s.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if s.Endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(s.Endpoint)
	}
	return cfg, nil
}
