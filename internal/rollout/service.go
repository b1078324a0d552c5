package rollout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pupbiru/humanitix-auto-codes/internal/discount"
	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/models"
	"github.com/pupbiru/humanitix-auto-codes/internal/selector"
)

// ConsoleAPI is the slice of the console client the rollout needs.
type ConsoleAPI interface {
	SearchEvents() (*models.EventSearchResponse, error)
	SendAutoDiscounts(eventID string, discounts []models.AutoDiscount) error
	UploadAccessCodes(eventID, appliesTo string, codes []string) error
	UploadDiscountCodes(eventID, appliesTo string, codes []string) error
}

// LedgerStore persists upload markers between runs.
type LedgerStore interface {
	Get(ctx context.Context, eventID string) (ledger.Marker, error)
	Set(ctx context.Context, eventID string, marker ledger.Marker) error
}

// Publisher streams audit records for completed remote mutations. Publish
// failures are logged and never affect the run.
type Publisher interface {
	PublishDiscountsUpdated(runID string, event models.Event) error
	PublishCodesUploaded(runID string, event models.Event, marker string) error
}

// CodeRenderer materializes the code list after a successful upload.
type CodeRenderer interface {
	RenderCodes(codes []string) error
}

// Service drives one rollout run: select events, reconcile each event's
// discounts, upload the code list where the ledger says it is due, and commit
// the ledger entry before moving on. Processing is strictly sequential.
type Service struct {
	Console    ConsoleAPI
	Ledger     LedgerStore
	Policy     ledger.Policy
	Selector   *selector.Selector
	Publisher  Publisher    // optional
	Renderer   CodeRenderer // optional
	Codes      []string
	UploadKind string // "access" or "discount"
	Logger     *logger.Logger
}

// EventReport is the per-event outcome of a run.
type EventReport struct {
	EventID         string `json:"event_id"`
	Name            string `json:"name"`
	DiscountsPushed bool   `json:"discounts_pushed"`
	CodesUploaded   bool   `json:"codes_uploaded"`
	SkipReason      string `json:"skip_reason,omitempty"`
}

// RunReport summarizes a run. On a fatal error the report still carries the
// events completed before the failure.
type RunReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Events     []EventReport `json:"events"`
}

// Run executes one rollout. A remote failure aborts the run immediately;
// ledger entries committed for earlier events stay committed.
func (s *Service) Run(ctx context.Context) (*RunReport, error) {
	now := time.Now()
	report := &RunReport{
		RunID:     uuid.New().String(),
		StartedAt: now,
		Events:    []EventReport{},
	}
	s.Logger.LogRollout(report.RunID, "Run started")

	resp, err := s.Console.SearchEvents()
	if err != nil {
		report.FinishedAt = time.Now()
		return report, fmt.Errorf("search events: %w", err)
	}

	matched, err := s.Selector.Select(resp.Events, now)
	if err != nil {
		report.FinishedAt = time.Now()
		return report, err
	}
	s.Logger.LogRollout(report.RunID, fmt.Sprintf("%d of %d events matched", len(matched), len(resp.Events)))

	currentMarker := s.Policy.Marker(s.Codes)
	for _, event := range matched {
		eventReport, err := s.processEvent(ctx, event, currentMarker, report.RunID)
		report.Events = append(report.Events, eventReport)
		if err != nil {
			report.FinishedAt = time.Now()
			return report, err
		}
	}

	report.FinishedAt = time.Now()
	s.Logger.LogRollout(report.RunID, "Run finished")
	return report, nil
}

func (s *Service) processEvent(ctx context.Context, event models.Event, currentMarker ledger.Marker, runID string) (EventReport, error) {
	eventReport := EventReport{EventID: event.EventID, Name: event.Name}
	s.Logger.LogEvent("PROCESS", event.EventID, event.Name)

	vips := selector.VIPTicketTypes(event.TicketTypes)
	vipIDs := make([]string, len(vips))
	for i, tt := range vips {
		vipIDs[i] = tt.ID
	}

	// Step 1: reconcile the discount set.
	manual := discount.ManualDiscounts(event.AutoDiscounts)
	generated := discount.Generate(vips)
	decision := discount.Reconcile(manual, generated, event.AutoDiscounts)
	if decision.Push {
		s.Logger.LogEvent("DISCOUNTS", event.EventID, "Updating auto discounts")
		if err := s.Console.SendAutoDiscounts(event.EventID, decision.Desired); err != nil {
			return eventReport, fmt.Errorf("update auto discounts for %s: %w", event.EventID, err)
		}
		eventReport.DiscountsPushed = true
		if s.Publisher != nil {
			if err := s.Publisher.PublishDiscountsUpdated(runID, event); err != nil {
				s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (discounts updated): %v", err))
			}
		}
	}

	// Step 2: upload the code list if the ledger says it is due.
	stored, err := s.Ledger.Get(ctx, event.EventID)
	if err != nil {
		return eventReport, fmt.Errorf("read ledger for %s: %w", event.EventID, err)
	}
	if !s.Policy.ShouldUpload(stored, currentMarker) {
		eventReport.SkipReason = "codes already uploaded"
		s.Logger.LogEvent("CODES", event.EventID, "Already processed access codes")
		return eventReport, nil
	}

	s.Logger.LogEvent("CODES", event.EventID, "Sending access codes")
	appliesTo := strings.Join(vipIDs, ",")
	if s.UploadKind == "discount" {
		err = s.Console.UploadDiscountCodes(event.EventID, appliesTo, s.Codes)
	} else {
		err = s.Console.UploadAccessCodes(event.EventID, appliesTo, s.Codes)
	}
	if err != nil {
		return eventReport, fmt.Errorf("upload codes for %s: %w", event.EventID, err)
	}
	eventReport.CodesUploaded = true

	if s.Renderer != nil {
		if err := s.Renderer.RenderCodes(s.Codes); err != nil {
			s.Logger.Error("QR", fmt.Sprintf("Render error: %v", err))
		}
	}
	if s.Publisher != nil {
		if err := s.Publisher.PublishCodesUploaded(runID, event, string(currentMarker)); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (codes uploaded): %v", err))
		}
	}

	// Step 3: commit the ledger entry before the next event.
	if err := s.Ledger.Set(ctx, event.EventID, currentMarker); err != nil {
		return eventReport, fmt.Errorf("commit ledger for %s: %w", event.EventID, err)
	}
	s.Logger.LogLedger("COMMIT", event.EventID, string(currentMarker))

	return eventReport, nil
}
