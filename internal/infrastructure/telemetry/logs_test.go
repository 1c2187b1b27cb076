package telemetry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r.Body().AsString())
	}
	return out
}

func TestLoggerProvider_Bridge(t *testing.T) {
	exporter := &memoryLogExporter{}
	sdk := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	lp := telemetry.NewLoggerProviderFromSDK(sdk, "propertyhub", zap.NewNop())
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	core, local := observer.New(zap.DebugLevel)
	logger := lp.Bridge(zap.New(core), zap.InfoLevel)

	logger.Debug("lock acquired")
	logger.Info("Tenancy created", zap.String("unit_number", "2B"))
	logger.With(zap.String("request_id", "r-1")).Warn("Unit already free")
	require.NoError(t, lp.ForceFlush(context.Background()))

	assert.Equal(t, 3, local.Len(), "local core keeps every level")
	assert.Equal(t, []string{"Tenancy created", "Unit already free"}, exporter.bodies())
}
