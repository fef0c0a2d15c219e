package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCollaborator struct {
	err   error
	calls int
}

func (m *mockCollaborator) HealthCheck(_ context.Context) error {
	m.calls++
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	c := &mockCollaborator{}
	r := New(c, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["collaborator"] != CheckOK {
		t.Errorf("expected collaborator %q, got %q", CheckOK, r.Checks["collaborator"])
	}
	if r.Checks["panel"] != CheckOK {
		t.Errorf("expected panel %q, got %q", CheckOK, r.Checks["panel"])
	}
	if c.calls != 1 {
		t.Errorf("expected one probe, got %d", c.calls)
	}
}

func TestCheck_CollaboratorDown(t *testing.T) {
	r := New(&mockCollaborator{err: errors.New("connection refused")}, nil).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["collaborator"] != CheckError {
		t.Errorf("expected collaborator %q, got %q", CheckError, r.Checks["collaborator"])
	}
	if r.Checks["panel"] != CheckOK {
		t.Error("panel itself stays ok")
	}
}

func TestCheck_NoCollaborator(t *testing.T) {
	r := New(nil, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["collaborator"]; ok {
		t.Error("collaborator check should be absent when checker is nil")
	}
}
