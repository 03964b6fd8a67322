package predictor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

// ListMonitors attaches every monitoring schedule on the endpoint.
func (p *Predictor) ListMonitors(ctx context.Context) ([]lib.Monitor, error) {
	schedules, err := p.session.ListMonitoringSchedules(ctx, p.endpointName)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		p.logger.Info("no monitors found for endpoint", zap.String("endpoint", p.endpointName))
		return []lib.Monitor{}, nil
	}
	monitors := make([]lib.Monitor, 0, len(schedules))
	for _, s := range schedules {
		kind, err := p.monitorKind(ctx, s.Name, s.MonitoringType)
		if err != nil {
			return nil, err
		}
		m, err := p.session.AttachMonitor(ctx, kind, s.Name)
		if err != nil {
			return nil, err
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}

// monitorKind decides how a schedule is attached. Bias and explainability
// schedules are recognised by type alone; anything else needs the schedule
// itself, since legacy schedules embed their job definition.
func (p *Predictor) monitorKind(ctx context.Context, scheduleName, monitoringType string) (lib.MonitorKind, error) {
	switch monitoringType {
	case lib.MonitoringTypeModelBias:
		return lib.MonitorKindModelBias, nil
	case lib.MonitoringTypeModelExplainability:
		return lib.MonitorKindModelExplainability, nil
	}
	schedule, err := p.session.DescribeMonitoringSchedule(ctx, scheduleName)
	if err != nil {
		return 0, err
	}
	if def := schedule.EmbeddedJobDefinition; def != nil {
		if def.IsDefaultAnalyzer() {
			return lib.MonitorKindDataQuality, nil
		}
		return lib.MonitorKindGeneric, nil
	}
	switch monitoringType {
	case lib.MonitoringTypeDataQuality:
		return lib.MonitorKindDataQuality, nil
	case lib.MonitoringTypeModelQuality:
		return lib.MonitorKindModelQuality, nil
	}
	return 0, fmt.Errorf("%w: %q for schedule %s", lib.ErrUnrecognizedMonitoringType, monitoringType, scheduleName)
}
