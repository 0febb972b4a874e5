package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSClient publishes command jobs to an SQS queue.
type SQSClient struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSClient builds a publisher for the given queue URL.
func NewSQSClient(ctx context.Context, region, queueURL string) (*SQSClient, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("queue url is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSClient{client: sqs.NewFromConfig(cfg), queueURL: queueURL}, nil
}

// Send publishes one job. The command type rides along as a message
// attribute so queue consumers can filter without parsing bodies.
func (c *SQSClient) Send(ctx context.Context, m Message) error {
	body, err := m.Encode()
	if err != nil {
		return err
	}

	_, err = c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(c.queueURL),
		MessageBody: aws.String(body),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"commandType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(m.CommandType),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sqs send job=%s command=%s: %w", m.JobID, m.CommandType, err)
	}
	return nil
}

var _ Client = (*SQSClient)(nil)
