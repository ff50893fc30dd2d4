package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	for name, result := range report.Checks {
		if result != CheckOK {
			t.Errorf("check %s = %s, want ok", name, result)
		}
	}
	if len(report.Checks) != 3 {
		t.Errorf("expected 3 checks, got %d", len(report.Checks))
	}
}

func TestCheck_DegradedOnProviderFailure(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("unreachable")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding check error, got %s", report.Checks["embedding"])
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("database check should still pass, got %s", report.Checks["database"])
	}
}

func TestCheck_NilProvidersSkipped(t *testing.T) {
	svc := New(&mockPinger{}, nil, nil)

	report := svc.Check(context.Background())
	if len(report.Checks) != 1 {
		t.Fatalf("expected only the database check, got %d", len(report.Checks))
	}
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
}
