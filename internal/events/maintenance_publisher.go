package events

import (
	"context"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/maintenance"
)

// MaintenanceReportPublisher turns scheduler cycle reports into CloudEvents.
type MaintenanceReportPublisher struct {
	publisher Publisher
	source    string
}

// NewMaintenanceReportPublisher creates a maintenance.ReportSink that publishes through
// publisher.
func NewMaintenanceReportPublisher(publisher Publisher, source string) *MaintenanceReportPublisher {
	return &MaintenanceReportPublisher{publisher: publisher, source: source}
}

// PublishCycleReport implements maintenance.ReportSink.
func (p *MaintenanceReportPublisher) PublishCycleReport(ctx context.Context, report maintenance.CycleReport) error {
	eventType := MaintenanceCycleCompleted
	if !report.Succeeded() {
		eventType = MaintenanceCycleFailed
	}

	ce, err := NewCloudEvent(p.source, eventType, MaintenanceCycleEvent{
		Trigger:           report.Trigger,
		StartedAt:         report.StartedAt,
		FinishedAt:        report.FinishedAt,
		Attempts:          report.Attempts,
		ExpiredPromotions: report.Result.ExpiredPromotions,
		RepairedBookings:  report.Result.RepairedBookings,
		Error:             report.Error,
	})
	if err != nil {
		return err
	}
	return p.publisher.PublishEvent(ctx, TopicMaintenanceEvents, ce)
}
