package sagemaker

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/samber/lo"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

func (smc Client) DescribeEndpoint(ctx context.Context, endpointName string) (lib.Endpoint, error) {
	input := sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(endpointName),
	}
	var out *sagemaker.DescribeEndpointOutput
	err := smc.call("DescribeEndpoint", func() (err error) {
		out, err = smc.metadataClient.DescribeEndpointWithContext(ctx, &input)
		return err
	})
	if err != nil {
		return lib.Endpoint{}, err
	}
	return lib.Endpoint{
		Name:               aws.StringValue(out.EndpointName),
		Arn:                aws.StringValue(out.EndpointArn),
		EndpointConfigName: aws.StringValue(out.EndpointConfigName),
		Status:             aws.StringValue(out.EndpointStatus),
	}, nil
}

func (smc Client) describeEndpointConfig(ctx context.Context, endpointConfigName string) (*sagemaker.DescribeEndpointConfigOutput, error) {
	input := sagemaker.DescribeEndpointConfigInput{
		EndpointConfigName: aws.String(endpointConfigName),
	}
	var out *sagemaker.DescribeEndpointConfigOutput
	err := smc.call("DescribeEndpointConfig", func() (err error) {
		out, err = smc.metadataClient.DescribeEndpointConfigWithContext(ctx, &input)
		return err
	})
	return out, err
}

func (smc Client) DescribeEndpointConfig(ctx context.Context, endpointConfigName string) (lib.EndpointConfig, error) {
	out, err := smc.describeEndpointConfig(ctx, endpointConfigName)
	if err != nil {
		return lib.EndpointConfig{}, err
	}
	return lib.EndpointConfig{
		Name:               aws.StringValue(out.EndpointConfigName),
		Arn:                aws.StringValue(out.EndpointConfigArn),
		ProductionVariants: lo.Map(out.ProductionVariants, func(pv *sagemaker.ProductionVariant, _ int) lib.ProductionVariant { return fromSDKVariant(pv) }),
	}, nil
}

func (smc Client) listTags(ctx context.Context, resourceArn string) ([]*sagemaker.Tag, error) {
	var tags []*sagemaker.Tag
	err := smc.call("ListTags", func() error {
		return smc.metadataClient.ListTagsPagesWithContext(ctx, &sagemaker.ListTagsInput{
			ResourceArn: aws.String(resourceArn),
		}, func(page *sagemaker.ListTagsOutput, _ bool) bool {
			tags = append(tags, page.Tags...)
			return true
		})
	})
	return tags, err
}

// CreateEndpointConfigFromExisting clones an endpoint config under a new
// name, replacing the fields set in overrides.
func (smc Client) CreateEndpointConfigFromExisting(ctx context.Context, existingConfigName, newConfigName string, overrides lib.EndpointConfigOverrides) error {
	existing, err := smc.describeEndpointConfig(ctx, existingConfigName)
	if err != nil {
		return err
	}
	input := sagemaker.CreateEndpointConfigInput{
		EndpointConfigName:       aws.String(newConfigName),
		ProductionVariants:       existing.ProductionVariants,
		AsyncInferenceConfig:     existing.AsyncInferenceConfig,
		ExplainerConfig:          existing.ExplainerConfig,
		ShadowProductionVariants: existing.ShadowProductionVariants,
		KmsKeyId:                 existing.KmsKeyId,
		DataCaptureConfig:        existing.DataCaptureConfig,
	}
	if len(overrides.ProductionVariants) > 0 {
		input.ProductionVariants = toSDKVariants(overrides.ProductionVariants)
	}
	tags := toSDKTags(overrides.Tags)
	if len(tags) == 0 && existing.EndpointConfigArn != nil {
		existingTags, err := smc.listTags(ctx, aws.StringValue(existing.EndpointConfigArn))
		if err != nil {
			return err
		}
		tags = userTags(existingTags)
	}
	if len(tags) > 0 {
		input.Tags = tags
	}
	if overrides.KmsKeyID != "" {
		input.KmsKeyId = aws.String(overrides.KmsKeyID)
	}
	if overrides.DataCaptureConfig != nil {
		input.DataCaptureConfig = smc.toSDKDataCapture(overrides.DataCaptureConfig, existing.DataCaptureConfig)
	}
	if overrides.EndpointType == lib.EndpointTypeInferenceComponentBased {
		input.ExecutionRoleArn = existing.ExecutionRoleArn
		input.VpcConfig = existing.VpcConfig
		input.EnableNetworkIsolation = existing.EnableNetworkIsolation
	}
	smc.logger.Info("creating endpoint config from existing",
		zap.String("existing_config", existingConfigName),
		zap.String("new_config", newConfigName),
	)
	return smc.call("CreateEndpointConfig", func() error {
		_, err := smc.metadataClient.CreateEndpointConfigWithContext(ctx, &input)
		return err
	})
}

// UpdateEndpoint repoints an endpoint at a config, optionally blocking until
// the endpoint is back in service.
func (smc Client) UpdateEndpoint(ctx context.Context, endpointName, endpointConfigName string, wait bool) error {
	input := sagemaker.UpdateEndpointInput{
		EndpointName:       aws.String(endpointName),
		EndpointConfigName: aws.String(endpointConfigName),
	}
	err := smc.call("UpdateEndpoint", func() error {
		_, err := smc.metadataClient.UpdateEndpointWithContext(ctx, &input)
		return err
	})
	if err != nil || !wait {
		return err
	}
	smc.logger.Info("waiting for endpoint to be in service", zap.String("endpoint", endpointName))
	return smc.call("WaitUntilEndpointInService", func() error {
		return smc.metadataClient.WaitUntilEndpointInServiceWithContext(ctx,
			&sagemaker.DescribeEndpointInput{EndpointName: aws.String(endpointName)},
			request.WithWaiterDelay(request.ConstantWaiterDelay(smc.args.PollInterval)),
		)
	})
}

func (smc Client) DeleteEndpoint(ctx context.Context, endpointName string) error {
	input := sagemaker.DeleteEndpointInput{
		EndpointName: aws.String(endpointName),
	}
	return smc.call("DeleteEndpoint", func() error {
		_, err := smc.metadataClient.DeleteEndpointWithContext(ctx, &input)
		return err
	})
}

func (smc Client) DeleteEndpointConfig(ctx context.Context, endpointConfigName string) error {
	input := sagemaker.DeleteEndpointConfigInput{
		EndpointConfigName: aws.String(endpointConfigName),
	}
	return smc.call("DeleteEndpointConfig", func() error {
		_, err := smc.metadataClient.DeleteEndpointConfigWithContext(ctx, &input)
		return err
	})
}

func (smc Client) DeleteModel(ctx context.Context, modelName string) error {
	input := sagemaker.DeleteModelInput{
		ModelName: aws.String(modelName),
	}
	return smc.call("DeleteModel", func() error {
		_, err := smc.metadataClient.DeleteModelWithContext(ctx, &input)
		return err
	})
}
