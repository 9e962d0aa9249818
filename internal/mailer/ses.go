package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ignite/newsletter/internal/pkg/logger"
)

// SESClient sends email through AWS SES using the SDK v2.
type SESClient struct {
	client  *sesv2.Client
	sender  string
	timeout time.Duration
}

// NewSESClient builds an SES client with static credentials. The sender
// address must be verified in the SES account.
func NewSESClient(ctx context.Context, accessKey, secretKey, region, sender string, timeout time.Duration) (*SESClient, error) {
	if region == "" {
		region = "us-east-1"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &SESClient{
		client:  sesv2.NewFromConfig(cfg),
		sender:  sender,
		timeout: timeout,
	}, nil
}

// Send delivers a single email. The per-send timeout bounds how long a slow
// SES endpoint can stall a broadcast.
func (c *SESClient) Send(ctx context.Context, email Email) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.sender),
		Destination:      &types.Destination{ToAddresses: []string{email.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if email.Text != "" {
		input.Content.Simple.Body.Text = &types.Content{Data: aws.String(email.Text), Charset: aws.String("UTF-8")}
	}

	result, err := c.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", logger.RedactEmail(email.To), err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	logger.Debug("email sent", "recipient", email.To, "message_id", messageID)

	return nil
}
