package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/tasks"
)

// stubEngine emits one progress update, lingers, then returns its canned result.
type stubEngine struct {
	result *tasks.ScanResult
	err    error
	delay  time.Duration
}

func (s *stubEngine) Run(ctx context.Context, req tasks.ScanRequest, progress chan<- tasks.ProgressUpdate) (*tasks.ScanResult, error) {
	progress <- tasks.ProgressUpdate{Phase: tasks.SearchEvents, Step: 1, Total: 1, Message: "searching"}
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func stubResult() *tasks.ScanResult {
	agg := models.Aggregation{}
	agg.Append(models.ArtistResult{
		Artist: models.Artist{ID: "a1", Name: "Muse", Popularity: 78},
		Events: []models.Event{{Name: "Muse Live", LocalDate: "2026-09-05"}},
	})
	return &tasks.ScanResult{
		ID:             "run-1",
		Outcome:        tasks.OutcomeOK,
		PlaylistID:     "pl123",
		ArtistsScanned: 1,
		Aggregation:    agg,
	}
}

// drainScan executes the scan commands the way the bubbletea loop would,
// without updating the model, and returns the terminal completion message.
func drainScan(t *testing.T, m *Model) (scanCompleteMsg, int) {
	t.Helper()

	var progressCount int
	cmd := m.Init()
	for {
		msg := cmd()
		switch msg := msg.(type) {
		case progressUpdateMsg:
			progressCount++
			cmd = m.waitForProgress()
		case scanCompleteMsg:
			return msg, progressCount
		default:
			t.Fatalf("unexpected message: %#v", msg)
		}
	}
}

func TestScanCompletesViaMessage(t *testing.T) {
	engine := &stubEngine{result: stubResult(), delay: 20 * time.Millisecond}
	m := NewModel(context.Background(), engine, tasks.ScanRequest{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// Render continuously while the engine goroutine runs; the result must
	// arrive as a message, never as a direct write to model fields.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = m.View()
			}
		}
	}()

	complete, progressCount := drainScan(t, m)
	close(stop)
	wg.Wait()

	if progressCount == 0 {
		t.Error("expected at least one progress message before completion")
	}
	if complete.err != nil {
		t.Fatalf("unexpected error: %v", complete.err)
	}
	if complete.result == nil || complete.result.Outcome != tasks.OutcomeOK {
		t.Fatalf("unexpected completion payload: %+v", complete.result)
	}

	if m.result != nil || m.err != nil {
		t.Error("model fields must stay untouched until Update handles the message")
	}

	m.Update(complete)
	if m.view != ArtistListView {
		t.Errorf("expected ArtistListView after completion, got %v", m.view)
	}
	if m.progressChan != nil || m.doneChan != nil {
		t.Error("expected channels to be cleared after completion")
	}
	if !strings.Contains(m.View(), "Muse") {
		t.Errorf("expected artist list in view:\n%s", m.View())
	}
}

func TestScanFailureShownAfterMessage(t *testing.T) {
	engineErr := errors.New("upstream down")
	m := NewModel(context.Background(), &stubEngine{err: engineErr}, tasks.ScanRequest{})

	complete, _ := drainScan(t, m)
	if !errors.Is(complete.err, engineErr) {
		t.Fatalf("expected engine error, got %v", complete.err)
	}

	m.Update(complete)
	if m.view != ScanView {
		t.Errorf("expected to stay on the scan view, got %v", m.view)
	}
	if !strings.Contains(m.View(), "Scan failed") {
		t.Errorf("expected failure message in view:\n%s", m.View())
	}
}

func TestScanNonOKOutcomesRendered(t *testing.T) {
	cases := []struct {
		name    string
		outcome tasks.Outcome
		want    string
	}{
		{"empty playlist", tasks.OutcomeEmptyPlaylist, "no tracks"},
		{"no matches", tasks.OutcomeNoMatches, "upcoming concerts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := &tasks.ScanResult{Outcome: tc.outcome, PlaylistID: "pl123"}
			m := NewModel(context.Background(), &stubEngine{result: result}, tasks.ScanRequest{})

			complete, _ := drainScan(t, m)
			m.Update(complete)

			if m.view != ScanView {
				t.Errorf("expected to stay on the scan view, got %v", m.view)
			}
			if !strings.Contains(m.View(), tc.want) {
				t.Errorf("expected %q in view:\n%s", tc.want, m.View())
			}
		})
	}
}
