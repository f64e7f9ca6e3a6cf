package telemetry

import (
	"context"
	"testing"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		traces   string
		want     bool
	}{
		{"unset", "", "", false},
		{"endpoint", "https://api.honeycomb.io", "", true},
		{"traces endpoint", "", "http://localhost:4318/v1/traces", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.endpoint)
			t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", tt.traces)
			if got := Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResourceAttributes(t *testing.T) {
	got := make(map[string]string)
	for _, kv := range resourceAttributes() {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if got["service.name"] != serviceName {
		t.Errorf("service.name = %q, want %q", got["service.name"], serviceName)
	}
	for _, key := range []string{"service.version", "host.name", "os.type"} {
		if got[key] == "" {
			t.Errorf("%s is empty", key)
		}
	}
}

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("round").Start(context.Background(), "round.start")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("span should be a no-op before Setup")
	}
}
