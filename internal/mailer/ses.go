// Package mailer sends transactional emails through AWS SESv2.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

var (
	// ErrNotConfigured is returned when the client has no credentials.
	ErrNotConfigured = errors.New("mailer: client is not configured")

	// ErrSendFailed is returned when SES rejects or fails a send.
	ErrSendFailed = errors.New("mailer: failed to send email")
)

// Logger records delivery outcomes.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client sends plain-text emails via SESv2.
type Client struct {
	client *sesv2.Client
	sender string
	logger Logger
}

// NewClient builds an SES client from static credentials.
func NewClient(region, accessKeyID, secretAccessKey, sender string, logger Logger) (*Client, error) {
	if region == "" || accessKeyID == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("%w: region and credentials are required", ErrNotConfigured)
	}
	if sender == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrNotConfigured)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrNotConfigured, err)
	}

	return &Client{
		client: sesv2.NewFromConfig(awsCfg),
		sender: sender,
		logger: logger,
	}, nil
}

// Send delivers a plain-text email to a single recipient.
func (c *Client) Send(ctx context.Context, recipient, subject, body string) error {
	if c == nil || c.client == nil {
		return ErrNotConfigured
	}
	if recipient == "" {
		return fmt.Errorf("%w: recipient is required", ErrSendFailed)
	}

	input := &sesv2.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
		FromEmailAddress: aws.String(c.sender),
	}

	if _, err := c.client.SendEmail(ctx, input); err != nil {
		c.logger.Error("[Mailer] Send - failed to send %q to %s: %v", subject, recipient, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.logger.Info("[Mailer] Send - sent %q to %s", subject, recipient)
	return nil
}
