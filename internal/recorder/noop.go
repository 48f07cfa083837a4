package recorder

// NoopRecorder is a no-op implementation used when no journal is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordOperation(_ *OperationEvent) error { return nil }
func (n *NoopRecorder) RecordSummary(_ *SummaryEvent) error     { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
