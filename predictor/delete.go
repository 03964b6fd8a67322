package predictor

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

// DeletePredictor deletes the inference component behind the predictor, or
// the endpoint and its config when the predictor is not component scoped.
// wait only applies to inference components.
func (p *Predictor) DeletePredictor(ctx context.Context, wait bool) error {
	if p.componentName != "" {
		return p.session.DeleteInferenceComponent(ctx, p.componentName, wait)
	}
	return p.DeleteEndpoint(ctx, true)
}

// DeleteEndpoint deletes the endpoint, and first its current config when
// deleteEndpointConfig is set.
func (p *Predictor) DeleteEndpoint(ctx context.Context, deleteEndpointConfig bool) error {
	if deleteEndpointConfig {
		configName, err := p.getEndpointConfigName(ctx)
		if err != nil {
			return err
		}
		if err := p.session.DeleteEndpointConfig(ctx, configName); err != nil {
			return err
		}
	}
	return p.session.DeleteEndpoint(ctx, p.endpointName)
}

// DeleteModel deletes every model behind the predictor. A failure does not
// stop the remaining deletions; all failures are reported in one
// *lib.ModelDeletionError.
func (p *Predictor) DeleteModel(ctx context.Context) error {
	names, err := p.getModelNames(ctx)
	if err != nil {
		return err
	}
	var (
		failed []string
		errs   error
	)
	for _, name := range names {
		if err := p.session.DeleteModel(ctx, name); err != nil {
			p.logger.Warn("failed to delete model", zap.String("model", name), zap.Error(err))
			failed = append(failed, name)
			errs = multierr.Append(errs, err)
		}
	}
	if len(failed) > 0 {
		return &lib.ModelDeletionError{FailedModels: failed, Err: errs}
	}
	return nil
}
