package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ snsAPI = (*sns.Client)(nil)

// SNSEventPublisher fans out order status changes to an SNS topic.
// Subscribers can filter on the event_type message attribute.
type SNSEventPublisher struct {
	client   snsAPI
	topicARN string
}

var _ interfaces.IPaymentEventPublisher = (*SNSEventPublisher)(nil)

func NewSNSEventPublisher(client snsAPI, topicARN string) *SNSEventPublisher {
	return &SNSEventPublisher{client: client, topicARN: topicARN}
}

// NewPaymentEventPublisher returns the SNS publisher when a topic is
// configured and a log-only publisher otherwise.
func NewPaymentEventPublisher(cfg aws.Config, topicARN string) interfaces.IPaymentEventPublisher {
	if topicARN == "" {
		logger.Log.Info("payment events topic not configured, events are only logged")
		return LogEventPublisher{}
	}
	return NewSNSEventPublisher(sns.NewFromConfig(cfg), topicARN)
}

func (p *SNSEventPublisher) Publish(ctx context.Context, event entities.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payment event: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", p.topicARN, err)
	}

	logger.Debug(ctx, "payment event published",
		zap.String("order_ref", event.OrderRef),
		zap.String("event_type", string(event.Type)),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

// LogEventPublisher writes events to the application log.
type LogEventPublisher struct{}

func (LogEventPublisher) Publish(ctx context.Context, event entities.PaymentEvent) error {
	logger.Info(ctx, "payment event",
		zap.String("event_type", string(event.Type)),
		zap.String("order_ref", event.OrderRef),
		zap.String("provider_status", event.ProviderStatus),
	)
	return nil
}
