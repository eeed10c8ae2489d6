package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes application metrics to CloudWatch. Data points are
// buffered and flushed in batches; publishing is best-effort and never
// blocks request handling.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// CloudWatch caps PutMetricData at 1000 datums per call; flush well before.
const flushThreshold = 20

// NewMetrics creates a metrics publisher
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// IncrementCounter records a count metric
func (m *Metrics) IncrementCounter(ctx context.Context, name string, dimensions map[string]string) {
	m.record(ctx, name, 1, types.StandardUnitCount, dimensions)
}

// RecordDuration records a duration metric in milliseconds
func (m *Metrics) RecordDuration(ctx context.Context, name string, d time.Duration, dimensions map[string]string) {
	m.record(ctx, name, float64(d.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

// RecordValue records an arbitrary gauge value
func (m *Metrics) RecordValue(ctx context.Context, name string, value float64, dimensions map[string]string) {
	m.record(ctx, name, value, types.StandardUnitNone, dimensions)
}

func (m *Metrics) record(ctx context.Context, name string, value float64, unit types.StandardUnit, dimensions map[string]string) {
	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}

	for k, v := range dimensions {
		datum.Dimensions = append(datum.Dimensions, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	shouldFlush := len(m.buffer) >= flushThreshold
	m.mu.Unlock()

	if shouldFlush {
		m.Flush(ctx)
	}
}

// Flush publishes buffered datums. Failures are silently dropped; metrics
// must never affect the request path.
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	if len(m.buffer) == 0 {
		m.mu.Unlock()
		return
	}
	batch := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	if m.client == nil {
		return
	}

	_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: batch,
	})
}
