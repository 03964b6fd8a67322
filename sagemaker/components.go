package sagemaker

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/samber/lo"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

func (smc Client) describeInferenceComponent(ctx context.Context, name string, expected func(error) bool) (*sagemaker.DescribeInferenceComponentOutput, error) {
	input := sagemaker.DescribeInferenceComponentInput{
		InferenceComponentName: aws.String(name),
	}
	var out *sagemaker.DescribeInferenceComponentOutput
	err := smc.callExpecting("DescribeInferenceComponent", func() (err error) {
		out, err = smc.metadataClient.DescribeInferenceComponentWithContext(ctx, &input)
		return err
	}, expected)
	return out, err
}

func (smc Client) DescribeInferenceComponent(ctx context.Context, name string) (lib.InferenceComponent, error) {
	out, err := smc.describeInferenceComponent(ctx, name, nil)
	if err != nil {
		return lib.InferenceComponent{}, err
	}
	ic := lib.InferenceComponent{
		Name:         aws.StringValue(out.InferenceComponentName),
		Arn:          aws.StringValue(out.InferenceComponentArn),
		EndpointName: aws.StringValue(out.EndpointName),
		VariantName:  aws.StringValue(out.VariantName),
		Status:       aws.StringValue(out.InferenceComponentStatus),
	}
	if out.Specification != nil {
		ic.ModelName = aws.StringValue(out.Specification.ModelName)
	}
	return ic, nil
}

func (smc Client) UpdateInferenceComponent(ctx context.Context, update lib.InferenceComponentUpdate, wait bool) error {
	input := sagemaker.UpdateInferenceComponentInput{
		InferenceComponentName: aws.String(update.Name),
		Specification:          toSDKSpecification(update.Specification),
	}
	if update.RuntimeConfig != nil {
		input.RuntimeConfig = &sagemaker.InferenceComponentRuntimeConfig{
			CopyCount: aws.Int64(update.RuntimeConfig.CopyCount),
		}
	}
	err := smc.call("UpdateInferenceComponent", func() error {
		_, err := smc.metadataClient.UpdateInferenceComponentWithContext(ctx, &input)
		return err
	})
	if err != nil || !wait {
		return err
	}
	return smc.waitForInferenceComponent(ctx, update.Name, nil, func(out *sagemaker.DescribeInferenceComponentOutput, err error) (bool, error) {
		if err != nil {
			return false, err
		}
		switch status := aws.StringValue(out.InferenceComponentStatus); status {
		case sagemaker.InferenceComponentStatusInService:
			return true, nil
		case sagemaker.InferenceComponentStatusFailed:
			return false, fmt.Errorf("inference component %s failed to update: %s", update.Name, aws.StringValue(out.FailureReason))
		default:
			return false, nil
		}
	})
}

func (smc Client) DeleteInferenceComponent(ctx context.Context, name string, wait bool) error {
	input := sagemaker.DeleteInferenceComponentInput{
		InferenceComponentName: aws.String(name),
	}
	err := smc.call("DeleteInferenceComponent", func() error {
		_, err := smc.metadataClient.DeleteInferenceComponentWithContext(ctx, &input)
		return err
	})
	if err != nil || !wait {
		return err
	}
	return smc.waitForInferenceComponent(ctx, name, isComponentGone, func(out *sagemaker.DescribeInferenceComponentOutput, err error) (bool, error) {
		if err != nil {
			if isComponentGone(err) {
				return true, nil
			}
			return false, err
		}
		if aws.StringValue(out.InferenceComponentStatus) == sagemaker.InferenceComponentStatusFailed {
			return false, fmt.Errorf("inference component %s failed to delete: %s", name, aws.StringValue(out.FailureReason))
		}
		return false, nil
	})
}

// waitForInferenceComponent polls the component until done reports true or
// an error. Describe errors matching expected are handed to done without
// being reported as failed calls.
func (smc Client) waitForInferenceComponent(ctx context.Context, name string, expected func(error) bool, done func(*sagemaker.DescribeInferenceComponentOutput, error) (bool, error)) error {
	for {
		finished, err := done(smc.describeInferenceComponent(ctx, name, expected))
		if err != nil || finished {
			return err
		}
		smc.logger.Info("waiting for inference component", zap.String("inference_component", name))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-smc.clock.After(smc.args.PollInterval):
		}
	}
}

func isComponentGone(err error) bool {
	return isNotFound(err, "Could not find inference component")
}

func isNotFound(err error, prefix string) bool {
	if e, ok := err.(awserr.Error); ok {
		return e.Code() == "ValidationException" && strings.HasPrefix(e.Message(), prefix)
	}
	return false
}

func (smc Client) ListInferenceComponents(ctx context.Context, q lib.ListInferenceComponentsQuery) (lib.ListInferenceComponentsResult, error) {
	input := sagemaker.ListInferenceComponentsInput{
		EndpointNameEquals:     optString(q.EndpointNameEquals),
		VariantNameEquals:      optString(q.VariantNameEquals),
		NameContains:           optString(q.NameContains),
		CreationTimeAfter:      optTime(q.CreationTimeAfter),
		CreationTimeBefore:     optTime(q.CreationTimeBefore),
		LastModifiedTimeAfter:  optTime(q.LastModifiedTimeAfter),
		LastModifiedTimeBefore: optTime(q.LastModifiedTimeBefore),
		StatusEquals:           optString(q.StatusEquals),
		SortOrder:              optString(q.SortOrder),
		SortBy:                 optString(q.SortBy),
		MaxResults:             optInt64(q.MaxResults),
		NextToken:              optString(q.NextToken),
	}
	var out *sagemaker.ListInferenceComponentsOutput
	err := smc.call("ListInferenceComponents", func() (err error) {
		out, err = smc.metadataClient.ListInferenceComponentsWithContext(ctx, &input)
		return err
	})
	if err != nil {
		return lib.ListInferenceComponentsResult{}, err
	}
	return lib.ListInferenceComponentsResult{
		InferenceComponents: lo.Map(out.InferenceComponents, func(s *sagemaker.InferenceComponentSummary, _ int) lib.InferenceComponentSummary {
			return lib.InferenceComponentSummary{
				Name:             aws.StringValue(s.InferenceComponentName),
				Arn:              aws.StringValue(s.InferenceComponentArn),
				EndpointName:     aws.StringValue(s.EndpointName),
				EndpointArn:      aws.StringValue(s.EndpointArn),
				VariantName:      aws.StringValue(s.VariantName),
				Status:           aws.StringValue(s.InferenceComponentStatus),
				CreationTime:     aws.TimeValue(s.CreationTime),
				LastModifiedTime: aws.TimeValue(s.LastModifiedTime),
			}
		}),
		NextToken: aws.StringValue(out.NextToken),
	}, nil
}
