package predictor

import (
	"context"

	lib "smpredict/lib/sagemaker"
)

// EndpointContext returns the lineage context whose source is the endpoint,
// or nil if there is none yet. A found context is cached; a miss is not.
func (p *Predictor) EndpointContext(ctx context.Context) (*lib.EndpointContext, error) {
	if p.context != nil {
		return p.context, nil
	}
	endpoint, err := p.session.DescribeEndpoint(ctx, p.endpointName)
	if err != nil {
		return nil, err
	}
	contexts, err := p.session.ListEndpointContexts(ctx, endpoint.Arn)
	if err != nil {
		return nil, err
	}
	if len(contexts) == 0 {
		return nil, nil
	}
	ec, err := p.session.LoadEndpointContext(ctx, contexts[0].Name)
	if err != nil {
		return nil, err
	}
	p.context = &ec
	return p.context, nil
}
