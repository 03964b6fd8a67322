package sagemaker

import (
	"context"
)

type InferenceServer interface {
	InvokeEndpoint(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error)
	// SerializePayload renders a pre-packaged payload into request bytes,
	// resolving any object-store references it carries.
	SerializePayload(ctx context.Context, payload *Payload) ([]byte, error)
}

type EndpointRegistry interface {
	DescribeEndpoint(ctx context.Context, endpointName string) (Endpoint, error)
	DescribeEndpointConfig(ctx context.Context, endpointConfigName string) (EndpointConfig, error)
	CreateEndpointConfigFromExisting(ctx context.Context, existingConfigName, newConfigName string, overrides EndpointConfigOverrides) error
	UpdateEndpoint(ctx context.Context, endpointName, endpointConfigName string, wait bool) error

	DeleteEndpoint(ctx context.Context, endpointName string) error
	DeleteEndpointConfig(ctx context.Context, endpointConfigName string) error
	DeleteModel(ctx context.Context, modelName string) error

	DescribeInferenceComponent(ctx context.Context, name string) (InferenceComponent, error)
	UpdateInferenceComponent(ctx context.Context, update InferenceComponentUpdate, wait bool) error
	DeleteInferenceComponent(ctx context.Context, name string, wait bool) error
	ListInferenceComponents(ctx context.Context, query ListInferenceComponentsQuery) (ListInferenceComponentsResult, error)
}

type MonitorRegistry interface {
	ListMonitoringSchedules(ctx context.Context, endpointName string) ([]MonitoringScheduleSummary, error)
	DescribeMonitoringSchedule(ctx context.Context, scheduleName string) (MonitoringSchedule, error)
	AttachMonitor(ctx context.Context, kind MonitorKind, scheduleName string) (Monitor, error)
}

type LineageStore interface {
	ListEndpointContexts(ctx context.Context, sourceURI string) ([]ContextSummary, error)
	LoadEndpointContext(ctx context.Context, contextName string) (EndpointContext, error)
}

// Session is everything a predictor needs from the remote service.
type Session interface {
	InferenceServer
	EndpointRegistry
	MonitorRegistry
	LineageStore
}

// PredictorBase is the capability set shared by every predictor.
type PredictorBase interface {
	Predict(ctx context.Context, data any, opts PredictOptions) (any, error)
	DeletePredictor(ctx context.Context, wait bool) error
	ContentType() string
	Accept() string
}
