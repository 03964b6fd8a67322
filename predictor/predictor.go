// Package predictor drives a deployed SageMaker endpoint: it invokes it,
// reconfigures it, and finds what is attached to it.
package predictor

import (
	"context"

	"github.com/raulk/clock"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
	"smpredict/lib/serde"
)

// Predictor is bound to one endpoint, and optionally to one inference
// component on it. It is not safe for concurrent use.
type Predictor struct {
	endpointName  string
	componentName string

	serializer   serde.Serializer
	deserializer serde.Deserializer
	contentType  string
	accept       string

	session lib.Session
	clock   clock.Clock
	logger  *zap.Logger

	endpointConfigName string
	modelNames         []string
	context            *lib.EndpointContext
}

var _ lib.PredictorBase = (*Predictor)(nil)

type Option func(*Predictor)

// WithComponentName scopes the predictor to an inference component.
func WithComponentName(name string) Option {
	return func(p *Predictor) {
		p.componentName = name
	}
}

func WithSerializer(s serde.Serializer) Option {
	return func(p *Predictor) {
		p.serializer = s
	}
}

func WithDeserializer(d serde.Deserializer) Option {
	return func(p *Predictor) {
		p.deserializer = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

// WithClock sets the clock used to timestamp generated endpoint config names.
func WithClock(clk clock.Clock) Option {
	return func(p *Predictor) {
		p.clock = clk
	}
}

func New(endpointName string, session lib.Session, opts ...Option) *Predictor {
	p := &Predictor{
		endpointName: endpointName,
		serializer:   serde.IdentitySerializer{},
		deserializer: serde.BytesDeserializer{},
		session:      session,
		clock:        clock.New(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Predictor) EndpointName() string {
	return p.endpointName
}

func (p *Predictor) ComponentName() string {
	return p.componentName
}

// ContentType is the MIME type of request bodies: the override if set, else
// the serializer's.
func (p *Predictor) ContentType() string {
	if p.contentType != "" {
		return p.contentType
	}
	return p.serializer.ContentType()
}

// Accept is the accept header sent with requests: the override if set, else
// the deserializer's accept list.
func (p *Predictor) Accept() string {
	if p.accept != "" {
		return p.accept
	}
	return serde.JoinAccept(p.deserializer.Accept())
}

func (p *Predictor) SetContentType(contentType string) {
	p.contentType = contentType
}

func (p *Predictor) SetAccept(accept string) {
	p.accept = accept
}

func (p *Predictor) getEndpointConfigName(ctx context.Context) (string, error) {
	if p.endpointConfigName != "" {
		return p.endpointConfigName, nil
	}
	endpoint, err := p.session.DescribeEndpoint(ctx, p.endpointName)
	if err != nil {
		return "", err
	}
	p.endpointConfigName = endpoint.EndpointConfigName
	return p.endpointConfigName, nil
}

// getModelNames returns the model behind the inference component, or every
// model behind the endpoint config.
func (p *Predictor) getModelNames(ctx context.Context) ([]string, error) {
	if p.modelNames != nil {
		return p.modelNames, nil
	}
	names := []string{}
	if p.componentName != "" {
		ic, err := p.session.DescribeInferenceComponent(ctx, p.componentName)
		if err != nil {
			return nil, err
		}
		if ic.ModelName != "" {
			names = append(names, ic.ModelName)
		}
		p.modelNames = names
		return names, nil
	}
	configName, err := p.getEndpointConfigName(ctx)
	if err != nil {
		return nil, err
	}
	config, err := p.session.DescribeEndpointConfig(ctx, configName)
	if err != nil {
		return nil, err
	}
	for _, v := range config.ProductionVariants {
		if v.ModelName != "" {
			names = append(names, v.ModelName)
		}
	}
	p.modelNames = names
	return names, nil
}

func (p *Predictor) endpointType() lib.EndpointType {
	if p.componentName != "" {
		return lib.EndpointTypeInferenceComponentBased
	}
	return lib.EndpointTypeModelBased
}
