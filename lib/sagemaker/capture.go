package sagemaker

const (
	DefaultSamplingPercentage = 20
	DataCapturePrefix         = "model-monitor/data-capture"
)

var (
	DefaultCaptureOptions   = []string{"REQUEST", "RESPONSE"}
	DefaultCSVContentTypes  = []string{"text/csv"}
	DefaultJSONContentTypes = []string{"application/json"}
)

// DataCaptureConfig controls request/response capture on an endpoint.
// An empty DestinationS3URI is resolved by the session when the config is
// sent.
type DataCaptureConfig struct {
	EnableCapture      bool
	SamplingPercentage int64
	DestinationS3URI   string
	KmsKeyID           string
	CaptureOptions     []string
	CSVContentTypes    []string
	JSONContentTypes   []string
}

// NewDataCaptureConfig returns a config with the service defaults filled in.
func NewDataCaptureConfig(enable bool) *DataCaptureConfig {
	return &DataCaptureConfig{
		EnableCapture:      enable,
		SamplingPercentage: DefaultSamplingPercentage,
		CaptureOptions:     append([]string(nil), DefaultCaptureOptions...),
		CSVContentTypes:    append([]string(nil), DefaultCSVContentTypes...),
		JSONContentTypes:   append([]string(nil), DefaultJSONContentTypes...),
	}
}
