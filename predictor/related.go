package predictor

import (
	"context"

	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

// ListRelatedModels lists the inference components deployed on the
// predictor's endpoint. The endpoint filter in query is always replaced.
// A non-empty token means more results are available.
func (p *Predictor) ListRelatedModels(ctx context.Context, query lib.ListInferenceComponentsQuery) ([]lib.InferenceComponentSummary, string, error) {
	query.EndpointNameEquals = p.endpointName
	res, err := p.session.ListInferenceComponents(ctx, query)
	if err != nil {
		return nil, "", err
	}
	if len(res.InferenceComponents) == 0 {
		p.logger.Info("no deployed models found for endpoint", zap.String("endpoint", p.endpointName))
		return []lib.InferenceComponentSummary{}, res.NextToken, nil
	}
	return res.InferenceComponents, res.NextToken, nil
}
