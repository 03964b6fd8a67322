package sagemaker

import (
	"time"
)

const (
	// DefaultVariantName is the variant name given to production variants
	// built locally.
	DefaultVariantName = "AllTraffic"
	// DefaultResponseContentType is assumed when an invoke response carries no
	// content type.
	DefaultResponseContentType = "application/octet-stream"
)

type EndpointType string

const (
	EndpointTypeModelBased              EndpointType = "ModelBased"
	EndpointTypeInferenceComponentBased EndpointType = "InferenceComponentBased"
)

type Tag struct {
	Key   string
	Value string
}

type ManagedInstanceScaling struct {
	MinInstanceCount int64
	MaxInstanceCount int64
}

type ProductionVariant struct {
	VariantName            string
	ModelName              string
	InstanceType           string
	InitialInstanceCount   int64
	InitialVariantWeight   float64
	AcceleratorType        string
	ManagedInstanceScaling *ManagedInstanceScaling
}

// NewProductionVariant returns a single full-traffic variant serving modelName.
func NewProductionVariant(modelName, instanceType string, instanceCount int64, acceleratorType string) ProductionVariant {
	return ProductionVariant{
		VariantName:          DefaultVariantName,
		ModelName:            modelName,
		InstanceType:         instanceType,
		InitialInstanceCount: instanceCount,
		InitialVariantWeight: 1,
		AcceleratorType:      acceleratorType,
	}
}

type Endpoint struct {
	Name               string
	Arn                string
	EndpointConfigName string
	Status             string
}

type EndpointConfig struct {
	Name               string
	Arn                string
	ProductionVariants []ProductionVariant
}

// EndpointConfigOverrides carries the fields that replace the existing values
// when an endpoint config is cloned. Zero values keep the existing value.
type EndpointConfigOverrides struct {
	Tags               []Tag
	KmsKeyID           string
	DataCaptureConfig  *DataCaptureConfig
	ProductionVariants []ProductionVariant
	EndpointType       EndpointType
}

type InferenceComponent struct {
	Name         string
	Arn          string
	EndpointName string
	VariantName  string
	Status       string
	ModelName    string
}

type InferenceComponentContainer struct {
	Image       string
	ArtifactURL string
	Environment map[string]string
}

func (c InferenceComponentContainer) Empty() bool {
	return c.Image == "" && c.ArtifactURL == "" && len(c.Environment) == 0
}

type InferenceComponentStartupParameters struct {
	ModelDataDownloadTimeoutInSeconds           int64
	ContainerStartupHealthCheckTimeoutInSeconds int64
}

func (p InferenceComponentStartupParameters) Empty() bool {
	return p.ModelDataDownloadTimeoutInSeconds == 0 && p.ContainerStartupHealthCheckTimeoutInSeconds == 0
}

type InferenceComponentSpecification struct {
	ModelName                   string
	Container                   *InferenceComponentContainer
	StartupParameters           *InferenceComponentStartupParameters
	ComputeResourceRequirements *ComputeResourceRequirements
}

type InferenceComponentRuntimeConfig struct {
	CopyCount int64
}

type InferenceComponentUpdate struct {
	Name          string
	Specification *InferenceComponentSpecification
	RuntimeConfig *InferenceComponentRuntimeConfig
}

type InferenceComponentSummary struct {
	Name             string
	Arn              string
	EndpointName     string
	EndpointArn      string
	VariantName      string
	Status           string
	CreationTime     time.Time
	LastModifiedTime time.Time
}

// ListInferenceComponentsQuery filters inference components. Zero values are
// not sent.
type ListInferenceComponentsQuery struct {
	EndpointNameEquals     string
	VariantNameEquals      string
	NameContains           string
	CreationTimeAfter      time.Time
	CreationTimeBefore     time.Time
	LastModifiedTimeAfter  time.Time
	LastModifiedTimeBefore time.Time
	StatusEquals           string
	SortOrder              string
	SortBy                 string
	MaxResults             int64
	NextToken              string
}

type ListInferenceComponentsResult struct {
	InferenceComponents []InferenceComponentSummary
	NextToken           string
}

// InvokeRequest mirrors the fields of an InvokeEndpoint call. Empty strings
// are not sent.
type InvokeRequest struct {
	EndpointName           string
	ContentType            string
	Accept                 string
	TargetModel            string
	TargetVariant          string
	InferenceID            string
	CustomAttributes       string
	InferenceComponentName string
	Body                   []byte
}

type InvokeResponse struct {
	Body                     []byte
	ContentType              string
	CustomAttributes         string
	InvokedProductionVariant string
}

type PredictOptions struct {
	// InitialArgs seeds the request; its non-empty fields win over the
	// predictor's defaults.
	InitialArgs      *InvokeRequest
	TargetModel      string
	TargetVariant    string
	InferenceID      string
	CustomAttributes string
	ComponentName    string
}

type ContextSummary struct {
	Name      string
	Arn       string
	Type      string
	SourceURI string
}

type EndpointContext struct {
	Name             string
	Arn              string
	Type             string
	Description      string
	SourceURI        string
	SourceType       string
	Properties       map[string]string
	CreationTime     time.Time
	LastModifiedTime time.Time
}
