package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrPartialExport is returned when the collector rejects some data points.
var ErrPartialExport = errors.New("collector rejected data points")

// Exporter pushes OTLP metrics to a collector over gRPC.
type Exporter struct {
	conn    *grpc.ClientConn
	client  colmetricspb.MetricsServiceClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewExporter creates an Exporter for endpoint (host:port). The connection
// is established lazily on the first Export.
func NewExporter(endpoint string, timeout time.Duration, logger *zap.Logger) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("creating otlp client for %s: %w", endpoint, err)
	}
	return &Exporter{
		conn:    conn,
		client:  colmetricspb.NewMetricsServiceClient(conn),
		timeout: timeout,
		logger:  logger.With(zap.String("endpoint", endpoint)),
	}, nil
}

// Export sends req and waits for the collector's response or the timeout.
func (e *Exporter) Export(ctx context.Context, req *colmetricspb.ExportMetricsServiceRequest) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Export(ctx, req)
	if err != nil {
		return fmt.Errorf("exporting metrics: %w", err)
	}

	if ps := resp.GetPartialSuccess(); ps != nil && ps.GetRejectedDataPoints() > 0 {
		e.logger.Warn("collector rejected data points",
			zap.Int64("rejected", ps.GetRejectedDataPoints()),
			zap.String("reason", ps.GetErrorMessage()))
		return fmt.Errorf("%w: %d rejected: %s", ErrPartialExport, ps.GetRejectedDataPoints(), ps.GetErrorMessage())
	}

	e.logger.Debug("metrics exported", zap.Int("data_points", countDataPoints(req)))
	return nil
}

// Close releases the underlying connection.
func (e *Exporter) Close() error {
	return e.conn.Close()
}

func countDataPoints(req *colmetricspb.ExportMetricsServiceRequest) int {
	var n int
	for _, rm := range req.GetResourceMetrics() {
		for _, sm := range rm.GetScopeMetrics() {
			for _, m := range sm.GetMetrics() {
				n += len(m.GetGauge().GetDataPoints())
			}
		}
	}
	return n
}
