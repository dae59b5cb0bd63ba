package transaction

import "time"

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordTransaction(int64, int64)                {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
