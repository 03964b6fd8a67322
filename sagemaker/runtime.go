package sagemaker

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"

	lib "smpredict/lib/sagemaker"
)

func (smc Client) InvokeEndpoint(ctx context.Context, req *lib.InvokeRequest) (*lib.InvokeResponse, error) {
	input := sagemakerruntime.InvokeEndpointInput{
		Body:                   req.Body,
		EndpointName:           aws.String(req.EndpointName),
		ContentType:            optString(req.ContentType),
		Accept:                 optString(req.Accept),
		TargetModel:            optString(req.TargetModel),
		TargetVariant:          optString(req.TargetVariant),
		InferenceId:            optString(req.InferenceID),
		CustomAttributes:       optString(req.CustomAttributes),
		InferenceComponentName: optString(req.InferenceComponentName),
	}
	var out *sagemakerruntime.InvokeEndpointOutput
	err := smc.call("InvokeEndpoint", func() (err error) {
		out, err = smc.runtimeClient.InvokeEndpointWithContext(ctx, &input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &lib.InvokeResponse{
		Body:                     out.Body,
		ContentType:              aws.StringValue(out.ContentType),
		CustomAttributes:         aws.StringValue(out.CustomAttributes),
		InvokedProductionVariant: aws.StringValue(out.InvokedProductionVariant),
	}, nil
}
