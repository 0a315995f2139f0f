package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("hotel_id", "123"),
		attribute.String("guest_name", "Jane Roe"),
		attribute.String("outcome", "posted"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "hotel_id" && attrs[1].Key != "hotel_id" {
		t.Fatalf("expected hotel_id to be retained")
	}
	if attrs[0].Key != "outcome" && attrs[1].Key != "outcome" {
		t.Fatalf("expected outcome to be retained")
	}
}

func TestClassifyAuditErrorType(t *testing.T) {
	if got := ClassifyAuditErrorType(nil); got != AuditErrorTypeUnknown {
		t.Fatalf("expected %s, got %s", AuditErrorTypeUnknown, got)
	}
}
