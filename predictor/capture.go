package predictor

import (
	"context"

	lib "smpredict/lib/sagemaker"
)

func (p *Predictor) EnableDataCapture(ctx context.Context) error {
	return p.UpdateDataCaptureConfig(ctx, lib.NewDataCaptureConfig(true))
}

func (p *Predictor) DisableDataCapture(ctx context.Context) error {
	return p.UpdateDataCaptureConfig(ctx, lib.NewDataCaptureConfig(false))
}

// UpdateDataCaptureConfig clones the endpoint's live config with cfg as its
// data capture config and waits for the endpoint to pick it up. A nil cfg
// keeps the existing capture settings.
func (p *Predictor) UpdateDataCaptureConfig(ctx context.Context, cfg *lib.DataCaptureConfig) error {
	endpoint, err := p.session.DescribeEndpoint(ctx, p.endpointName)
	if err != nil {
		return err
	}
	newConfigName := lib.NameFromBase(p.endpointName, p.clock.Now())
	err = p.session.CreateEndpointConfigFromExisting(ctx, endpoint.EndpointConfigName, newConfigName, lib.EndpointConfigOverrides{
		DataCaptureConfig: cfg,
		EndpointType:      p.endpointType(),
	})
	if err != nil {
		return err
	}
	if err := p.session.UpdateEndpoint(ctx, p.endpointName, newConfigName, true); err != nil {
		return err
	}
	p.endpointConfigName = newConfigName
	return nil
}
