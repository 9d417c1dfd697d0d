package metrics

import (
	"context"
	"sort"
	"time"

	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

type cloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

var _ cloudWatchAPI = (*cloudwatch.Client)(nil)

// CloudWatchAlerts counts operational alerts as CloudWatch metrics.
// Alarms on these metrics page whoever is on call.
type CloudWatchAlerts struct {
	client    cloudWatchAPI
	namespace string
	enabled   bool
	now       func() time.Time
}

var _ interfaces.IAlertRecorder = (*CloudWatchAlerts)(nil)

func NewCloudWatchAlerts(cfg aws.Config, namespace string, enabled bool) *CloudWatchAlerts {
	return newCloudWatchAlerts(cloudwatch.NewFromConfig(cfg), namespace, enabled)
}

func newCloudWatchAlerts(client cloudWatchAPI, namespace string, enabled bool) *CloudWatchAlerts {
	if namespace == "" {
		namespace = "Checkout"
	}
	return &CloudWatchAlerts{client: client, namespace: namespace, enabled: enabled, now: time.Now}
}

// RecordAlert logs the alert and, when enabled, puts a count of one.
// Delivery failures are logged and never reach the caller.
func (a *CloudWatchAlerts) RecordAlert(ctx context.Context, name string, dimensions map[string]string) {
	logger.Warn(ctx, "alert", zap.String("alert", name), zap.Any("dimensions", dimensions))
	if !a.enabled {
		return
	}

	keys := make([]string, 0, len(dimensions))
	for k := range dimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dims := make([]types.Dimension, 0, len(keys))
	for _, k := range keys {
		dims = append(dims, types.Dimension{Name: aws.String(k), Value: aws.String(dimensions[k])})
	}

	_, err := a.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(a.namespace),
		MetricData: []types.MetricDatum{{
			MetricName: aws.String(name),
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(a.now()),
			Dimensions: dims,
		}},
	})
	if err != nil {
		logger.Error(ctx, "failed to put alert metric", err, zap.String("alert", name))
	}
}
