package sagemaker

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/samber/lo"

	lib "smpredict/lib/sagemaker"
	"smpredict/s3"
)

const reservedTagPrefix = "aws:"

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func optInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return aws.Int64(v)
}

func optFloat64(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return aws.Float64(v)
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return aws.Time(t)
}

func toSDKTags(tags []lib.Tag) []*sagemaker.Tag {
	return lo.Map(tags, func(t lib.Tag, _ int) *sagemaker.Tag {
		return &sagemaker.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	})
}

// userTags drops the tags the service reserves for itself; they cannot be
// set on a new resource.
func userTags(tags []*sagemaker.Tag) []*sagemaker.Tag {
	return lo.Filter(tags, func(t *sagemaker.Tag, _ int) bool {
		return !strings.HasPrefix(aws.StringValue(t.Key), reservedTagPrefix)
	})
}

func toSDKVariant(v lib.ProductionVariant) *sagemaker.ProductionVariant {
	pv := &sagemaker.ProductionVariant{
		VariantName:          aws.String(v.VariantName),
		ModelName:            optString(v.ModelName),
		InstanceType:         optString(v.InstanceType),
		InitialInstanceCount: optInt64(v.InitialInstanceCount),
		InitialVariantWeight: optFloat64(v.InitialVariantWeight),
		AcceleratorType:      optString(v.AcceleratorType),
	}
	if s := v.ManagedInstanceScaling; s != nil {
		pv.ManagedInstanceScaling = &sagemaker.ProductionVariantManagedInstanceScaling{
			Status:           aws.String("ENABLED"),
			MinInstanceCount: optInt64(s.MinInstanceCount),
			MaxInstanceCount: optInt64(s.MaxInstanceCount),
		}
	}
	return pv
}

func toSDKVariants(variants []lib.ProductionVariant) []*sagemaker.ProductionVariant {
	return lo.Map(variants, func(v lib.ProductionVariant, _ int) *sagemaker.ProductionVariant {
		return toSDKVariant(v)
	})
}

func fromSDKVariant(pv *sagemaker.ProductionVariant) lib.ProductionVariant {
	v := lib.ProductionVariant{
		VariantName:          aws.StringValue(pv.VariantName),
		ModelName:            aws.StringValue(pv.ModelName),
		InstanceType:         aws.StringValue(pv.InstanceType),
		InitialInstanceCount: aws.Int64Value(pv.InitialInstanceCount),
		InitialVariantWeight: aws.Float64Value(pv.InitialVariantWeight),
		AcceleratorType:      aws.StringValue(pv.AcceleratorType),
	}
	if s := pv.ManagedInstanceScaling; s != nil {
		v.ManagedInstanceScaling = &lib.ManagedInstanceScaling{
			MinInstanceCount: aws.Int64Value(s.MinInstanceCount),
			MaxInstanceCount: aws.Int64Value(s.MaxInstanceCount),
		}
	}
	return v
}

// toSDKDataCapture fills a missing destination from the existing config and
// then from the default bucket.
func (smc Client) toSDKDataCapture(c *lib.DataCaptureConfig, existing *sagemaker.DataCaptureConfig) *sagemaker.DataCaptureConfig {
	destination := c.DestinationS3URI
	if destination == "" && existing != nil {
		destination = aws.StringValue(existing.DestinationS3Uri)
	}
	if destination == "" && smc.args.DefaultBucket != "" {
		destination = s3.URI(smc.args.DefaultBucket, lib.DataCapturePrefix)
	}
	dc := &sagemaker.DataCaptureConfig{
		EnableCapture:             aws.Bool(c.EnableCapture),
		InitialSamplingPercentage: aws.Int64(c.SamplingPercentage),
		DestinationS3Uri:          optString(destination),
		KmsKeyId:                  optString(c.KmsKeyID),
		CaptureOptions: lo.Map(c.CaptureOptions, func(mode string, _ int) *sagemaker.CaptureOption {
			return &sagemaker.CaptureOption{CaptureMode: aws.String(strings.ToUpper(mode))}
		}),
	}
	if len(c.CSVContentTypes) > 0 || len(c.JSONContentTypes) > 0 {
		dc.CaptureContentTypeHeader = &sagemaker.CaptureContentTypeHeader{
			CsvContentTypes:  aws.StringSlice(c.CSVContentTypes),
			JsonContentTypes: aws.StringSlice(c.JSONContentTypes),
		}
	}
	return dc
}

func toSDKSpecification(s *lib.InferenceComponentSpecification) *sagemaker.InferenceComponentSpecification {
	if s == nil {
		return nil
	}
	spec := &sagemaker.InferenceComponentSpecification{
		ModelName: optString(s.ModelName),
	}
	if c := s.Container; c != nil {
		spec.Container = &sagemaker.InferenceComponentContainerSpecification{
			Image:       optString(c.Image),
			ArtifactUrl: optString(c.ArtifactURL),
		}
		if len(c.Environment) > 0 {
			spec.Container.Environment = aws.StringMap(c.Environment)
		}
	}
	if p := s.StartupParameters; p != nil {
		spec.StartupParameters = &sagemaker.InferenceComponentStartupParameters{
			ModelDataDownloadTimeoutInSeconds:           optInt64(p.ModelDataDownloadTimeoutInSeconds),
			ContainerStartupHealthCheckTimeoutInSeconds: optInt64(p.ContainerStartupHealthCheckTimeoutInSeconds),
		}
	}
	if r := s.ComputeResourceRequirements; r != nil {
		spec.ComputeResourceRequirements = &sagemaker.InferenceComponentComputeResourceRequirements{
			NumberOfCpuCoresRequired:           optFloat64(r.NumberOfCPUCoresRequired),
			NumberOfAcceleratorDevicesRequired: optFloat64(r.NumberOfAcceleratorDevicesRequired),
			MinMemoryRequiredInMb:              optInt64(r.MinMemoryRequiredInMb),
			MaxMemoryRequiredInMb:              optInt64(r.MaxMemoryRequiredInMb),
		}
	}
	return spec
}
