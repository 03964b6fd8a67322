package sagemaker

import "strings"

// DefaultMonitorRepository is the image repository of the built-in
// data-quality analyzer.
const DefaultMonitorRepository = "sagemaker-model-monitor-analyzer"

// Monitoring types as reported by the service.
const (
	MonitoringTypeDataQuality         = "DataQuality"
	MonitoringTypeModelQuality        = "ModelQuality"
	MonitoringTypeModelBias           = "ModelBias"
	MonitoringTypeModelExplainability = "ModelExplainability"
)

type MonitorKind int

const (
	// MonitorKindGeneric is a legacy schedule running a custom image.
	MonitorKindGeneric MonitorKind = iota
	MonitorKindDataQuality
	MonitorKindModelQuality
	MonitorKindModelBias
	MonitorKindModelExplainability
)

func (k MonitorKind) String() string {
	switch k {
	case MonitorKindGeneric:
		return "ModelMonitor"
	case MonitorKindDataQuality:
		return "DefaultModelMonitor"
	case MonitorKindModelQuality:
		return "ModelQualityMonitor"
	case MonitorKindModelBias:
		return "ModelBiasMonitor"
	case MonitorKindModelExplainability:
		return "ModelExplainabilityMonitor"
	default:
		return "UnknownMonitor"
	}
}

type MonitoringScheduleSummary struct {
	Name              string
	Arn               string
	MonitoringType    string
	Status            string
	EndpointName      string
	JobDefinitionName string
}

// MonitoringJobDefinition is the job definition embedded in legacy schedules.
type MonitoringJobDefinition struct {
	ImageURI string
	RoleArn  string
}

type MonitoringSchedule struct {
	Name              string
	Arn               string
	MonitoringType    string
	Status            string
	EndpointName      string
	JobDefinitionName string
	// EmbeddedJobDefinition is non-nil only for legacy schedules.
	EmbeddedJobDefinition *MonitoringJobDefinition
}

// IsDefaultAnalyzer reports whether a legacy job runs the built-in analyzer.
func (d MonitoringJobDefinition) IsDefaultAnalyzer() bool {
	return strings.HasSuffix(d.ImageURI, DefaultMonitorRepository)
}

// Monitor is a monitoring schedule attached to a local handle.
type Monitor struct {
	Kind              MonitorKind
	ScheduleName      string
	ScheduleArn       string
	Status            string
	EndpointName      string
	JobDefinitionName string
	ImageURI          string
	RoleArn           string
}
