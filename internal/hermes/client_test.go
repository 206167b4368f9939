package hermes

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type recordingClient struct {
	subjects []string
	err      error
}

func (r *recordingClient) Publish(subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}
func (r *recordingClient) Close() {}

func TestEmitNilClient(t *testing.T) {
	var buf bytes.Buffer
	Emit(nil, slog.New(slog.NewTextHandler(&buf, nil)), SubjectBriefCreated("b1"), BriefCreatedEvent{})
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %s", buf.String())
	}
}

func TestEmitPublishes(t *testing.T) {
	rc := &recordingClient{}
	Emit(rc, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), SubjectReportComputed("b1"), ReportComputedEvent{BriefID: "b1"})
	if len(rc.subjects) != 1 || rc.subjects[0] != "vouch.report.b1.computed" {
		t.Errorf("unexpected subjects %v", rc.subjects)
	}
}

func TestEmitLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	rc := &recordingClient{err: errors.New("no responders")}
	Emit(rc, slog.New(slog.NewTextHandler(&buf, nil)), SubjectInfluencerAdded("i1"), InfluencerAddedEvent{})
	if !strings.Contains(buf.String(), "failed to publish event") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}
