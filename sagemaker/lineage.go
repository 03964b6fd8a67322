package sagemaker

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sagemaker"

	lib "smpredict/lib/sagemaker"
)

// ListEndpointContexts returns every lineage context whose source is
// sourceURI.
func (smc Client) ListEndpointContexts(ctx context.Context, sourceURI string) ([]lib.ContextSummary, error) {
	var summaries []lib.ContextSummary
	err := smc.call("ListContexts", func() error {
		return smc.metadataClient.ListContextsPagesWithContext(ctx, &sagemaker.ListContextsInput{
			SourceUri: aws.String(sourceURI),
		}, func(page *sagemaker.ListContextsOutput, _ bool) bool {
			for _, s := range page.ContextSummaries {
				summary := lib.ContextSummary{
					Name: aws.StringValue(s.ContextName),
					Arn:  aws.StringValue(s.ContextArn),
					Type: aws.StringValue(s.ContextType),
				}
				if s.Source != nil {
					summary.SourceURI = aws.StringValue(s.Source.SourceUri)
				}
				summaries = append(summaries, summary)
			}
			return true
		})
	})
	return summaries, err
}

func (smc Client) LoadEndpointContext(ctx context.Context, contextName string) (lib.EndpointContext, error) {
	var out *sagemaker.DescribeContextOutput
	err := smc.call("DescribeContext", func() (err error) {
		out, err = smc.metadataClient.DescribeContextWithContext(ctx, &sagemaker.DescribeContextInput{
			ContextName: aws.String(contextName),
		})
		return err
	})
	if err != nil {
		return lib.EndpointContext{}, err
	}
	ec := lib.EndpointContext{
		Name:             aws.StringValue(out.ContextName),
		Arn:              aws.StringValue(out.ContextArn),
		Type:             aws.StringValue(out.ContextType),
		Description:      aws.StringValue(out.Description),
		Properties:       aws.StringValueMap(out.Properties),
		CreationTime:     aws.TimeValue(out.CreationTime),
		LastModifiedTime: aws.TimeValue(out.LastModifiedTime),
	}
	if out.Source != nil {
		ec.SourceURI = aws.StringValue(out.Source.SourceUri)
		ec.SourceType = aws.StringValue(out.Source.SourceType)
	}
	return ec, nil
}
