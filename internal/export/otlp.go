// Package export renders an analytics Result for downstream consumers:
// plain JSON, OTLP metrics as protobuf JSON, or an OTLP/gRPC push to a
// collector.
package export

import (
	"time"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/nixlim/pokerlytics/internal/analytics"
)

const scopeName = "github.com/nixlim/pokerlytics"

// Meta identifies the producer of an OTLP request.
type Meta struct {
	ServiceName string
	RunID       string
	Now         time.Time // timestamp for aggregate metrics; zero means time.Now
}

// BuildRequest maps a Result onto OTLP gauges: one data point per session
// for the time series, and one data point each for the aggregates.
func BuildRequest(r *analytics.Result, meta Meta) *colmetricspb.ExportMetricsServiceRequest {
	now := meta.Now
	if now.IsZero() {
		now = time.Now()
	}
	nowNano := uint64(now.UnixNano())

	var (
		profit     []*metricspb.NumberDataPoint
		cumProfit  []*metricspb.NumberDataPoint
		dollarRate []*metricspb.NumberDataPoint
		bbRate     []*metricspb.NumberDataPoint
		cumDollar  []*metricspb.NumberDataPoint
		cumBB      []*metricspb.NumberDataPoint
	)
	for _, s := range r.Sessions {
		ts := uint64(s.Start.UnixNano())
		attrs := []*commonpb.KeyValue{stringAttr("date", s.Date)}

		profit = append(profit, point(ts, s.Profit, attrs))
		cumProfit = append(cumProfit, point(ts, s.CumProfit, attrs))
		dollarRate = append(dollarRate, point(ts, s.DollarsPerHour, attrs))
		bbRate = append(bbRate, point(ts, s.BBPerHour, attrs))
		cumDollar = append(cumDollar, point(ts, s.CumAvgDollarsPerHour, attrs))
		cumBB = append(cumBB, point(ts, s.CumAvgBBPerHour, attrs))
	}

	metrics := []*metricspb.Metric{
		gauge("poker.session.profit", "USD", profit),
		gauge("poker.session.cumulative_profit", "USD", cumProfit),
		gauge("poker.session.dollars_per_hour", "USD/h", dollarRate),
		gauge("poker.session.bb_per_hour", "{bb}/h", bbRate),
		gauge("poker.session.cumulative_dollars_per_hour", "USD/h", cumDollar),
		gauge("poker.session.cumulative_bb_per_hour", "{bb}/h", cumBB),

		gauge("poker.total_profit", "USD", []*metricspb.NumberDataPoint{
			point(nowNano, r.TotalProfit, nil),
		}),
		gauge("poker.total_duration", "h", []*metricspb.NumberDataPoint{
			point(nowNano, r.TotalDuration, nil),
		}),
		gauge("poker.win_rate", "%", []*metricspb.NumberDataPoint{
			point(nowNano, r.WinRate, nil),
		}),
		gauge("poker.trend.value", "1", []*metricspb.NumberDataPoint{
			point(nowNano, r.Trend.Value, []*commonpb.KeyValue{
				stringAttr("direction", r.Trend.Direction()),
				stringAttr("method", r.Trend.Method.String()),
			}),
		}),
		gauge("poker.streak.count", "{session}", []*metricspb.NumberDataPoint{
			point(nowNano, float64(r.CurrentStreak.Count), []*commonpb.KeyValue{
				stringAttr("type", r.CurrentStreak.Kind.String()),
			}),
		}),
	}

	resourceAttrs := []*commonpb.KeyValue{stringAttr("service.name", meta.ServiceName)}
	if meta.RunID != "" {
		resourceAttrs = append(resourceAttrs, stringAttr("pokerlytics.run_id", meta.RunID))
	}

	return &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{
			{
				Resource: &resourcepb.Resource{Attributes: resourceAttrs},
				ScopeMetrics: []*metricspb.ScopeMetrics{
					{
						Scope:   &commonpb.InstrumentationScope{Name: scopeName},
						Metrics: metrics,
					},
				},
			},
		},
	}
}

func gauge(name, unit string, points []*metricspb.NumberDataPoint) *metricspb.Metric {
	return &metricspb.Metric{
		Name: name,
		Unit: unit,
		Data: &metricspb.Metric_Gauge{
			Gauge: &metricspb.Gauge{DataPoints: points},
		},
	}
}

func point(ts uint64, v float64, attrs []*commonpb.KeyValue) *metricspb.NumberDataPoint {
	return &metricspb.NumberDataPoint{
		TimeUnixNano: ts,
		Value:        &metricspb.NumberDataPoint_AsDouble{AsDouble: v},
		Attributes:   attrs,
	}
}

func stringAttr(key, value string) *commonpb.KeyValue {
	return &commonpb.KeyValue{
		Key:   key,
		Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: value}},
	}
}
