package predictor

import (
	"context"

	lib "smpredict/lib/sagemaker"
)

// Predict sends data to the endpoint and returns the deserialized response.
// Errors from the service are returned as is.
func (p *Predictor) Predict(ctx context.Context, data any, opts lib.PredictOptions) (any, error) {
	req, err := p.CreateRequestArgs(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	resp, err := p.session.InvokeEndpoint(ctx, req)
	if err != nil {
		return nil, err
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = lib.DefaultResponseContentType
	}
	return p.deserializer.Deserialize(resp.Body, contentType)
}

// CreateRequestArgs builds the invoke request for data. Fields set in
// opts.InitialArgs win over a payload's own content type and accept, which
// win over the predictor's.
func (p *Predictor) CreateRequestArgs(ctx context.Context, data any, opts lib.PredictOptions) (*lib.InvokeRequest, error) {
	req := &lib.InvokeRequest{}
	if opts.InitialArgs != nil {
		*req = *opts.InitialArgs
	}
	if req.EndpointName == "" {
		req.EndpointName = p.endpointName
	}

	payload, isPayload := data.(*lib.Payload)
	if req.ContentType == "" {
		if isPayload && payload.ContentType != "" {
			req.ContentType = payload.ContentType
		} else {
			req.ContentType = p.ContentType()
		}
	}
	if req.Accept == "" {
		if isPayload && payload.Accept != "" {
			req.Accept = payload.Accept
		} else {
			req.Accept = p.Accept()
		}
	}

	if opts.TargetModel != "" {
		req.TargetModel = opts.TargetModel
	}
	if opts.TargetVariant != "" {
		req.TargetVariant = opts.TargetVariant
	}
	if opts.InferenceID != "" {
		req.InferenceID = opts.InferenceID
	}
	if opts.CustomAttributes != "" {
		req.CustomAttributes = opts.CustomAttributes
	}

	var (
		body []byte
		err  error
	)
	if isPayload {
		body, err = p.session.SerializePayload(ctx, payload)
	} else {
		body, err = p.serializer.Serialize(data)
	}
	if err != nil {
		return nil, err
	}
	req.Body = body

	switch {
	case opts.ComponentName != "":
		req.InferenceComponentName = opts.ComponentName
	case p.componentName != "":
		req.InferenceComponentName = p.componentName
	}
	return req, nil
}
