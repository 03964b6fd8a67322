package sagemaker

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/samber/lo"

	lib "smpredict/lib/sagemaker"
)

func (smc Client) ListMonitoringSchedules(ctx context.Context, endpointName string) ([]lib.MonitoringScheduleSummary, error) {
	input := sagemaker.ListMonitoringSchedulesInput{
		EndpointName: aws.String(endpointName),
	}
	var out *sagemaker.ListMonitoringSchedulesOutput
	err := smc.call("ListMonitoringSchedules", func() (err error) {
		out, err = smc.metadataClient.ListMonitoringSchedulesWithContext(ctx, &input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(out.MonitoringScheduleSummaries, func(s *sagemaker.MonitoringScheduleSummary, _ int) lib.MonitoringScheduleSummary {
		return lib.MonitoringScheduleSummary{
			Name:              aws.StringValue(s.MonitoringScheduleName),
			Arn:               aws.StringValue(s.MonitoringScheduleArn),
			MonitoringType:    aws.StringValue(s.MonitoringType),
			Status:            aws.StringValue(s.MonitoringScheduleStatus),
			EndpointName:      aws.StringValue(s.EndpointName),
			JobDefinitionName: aws.StringValue(s.MonitoringJobDefinitionName),
		}
	}), nil
}

func (smc Client) DescribeMonitoringSchedule(ctx context.Context, scheduleName string) (lib.MonitoringSchedule, error) {
	input := sagemaker.DescribeMonitoringScheduleInput{
		MonitoringScheduleName: aws.String(scheduleName),
	}
	var out *sagemaker.DescribeMonitoringScheduleOutput
	err := smc.call("DescribeMonitoringSchedule", func() (err error) {
		out, err = smc.metadataClient.DescribeMonitoringScheduleWithContext(ctx, &input)
		return err
	})
	if err != nil {
		return lib.MonitoringSchedule{}, err
	}
	schedule := lib.MonitoringSchedule{
		Name:           aws.StringValue(out.MonitoringScheduleName),
		Arn:            aws.StringValue(out.MonitoringScheduleArn),
		MonitoringType: aws.StringValue(out.MonitoringType),
		Status:         aws.StringValue(out.MonitoringScheduleStatus),
		EndpointName:   aws.StringValue(out.EndpointName),
	}
	if cfg := out.MonitoringScheduleConfig; cfg != nil {
		schedule.JobDefinitionName = aws.StringValue(cfg.MonitoringJobDefinitionName)
		if schedule.MonitoringType == "" {
			schedule.MonitoringType = aws.StringValue(cfg.MonitoringType)
		}
		if def := cfg.MonitoringJobDefinition; def != nil {
			embedded := &lib.MonitoringJobDefinition{RoleArn: aws.StringValue(def.RoleArn)}
			if def.MonitoringAppSpecification != nil {
				embedded.ImageURI = aws.StringValue(def.MonitoringAppSpecification.ImageUri)
			}
			schedule.EmbeddedJobDefinition = embedded
		}
	}
	return schedule, nil
}

// AttachMonitor loads a schedule and, for schedules that reference a
// standalone job definition, the image and role of that definition.
func (smc Client) AttachMonitor(ctx context.Context, kind lib.MonitorKind, scheduleName string) (lib.Monitor, error) {
	schedule, err := smc.DescribeMonitoringSchedule(ctx, scheduleName)
	if err != nil {
		return lib.Monitor{}, err
	}
	monitor := lib.Monitor{
		Kind:              kind,
		ScheduleName:      schedule.Name,
		ScheduleArn:       schedule.Arn,
		Status:            schedule.Status,
		EndpointName:      schedule.EndpointName,
		JobDefinitionName: schedule.JobDefinitionName,
	}
	if def := schedule.EmbeddedJobDefinition; def != nil {
		monitor.ImageURI, monitor.RoleArn = def.ImageURI, def.RoleArn
		return monitor, nil
	}
	if schedule.JobDefinitionName == "" {
		return monitor, nil
	}
	monitor.ImageURI, monitor.RoleArn, err = smc.describeJobDefinition(ctx, kind, schedule.JobDefinitionName)
	return monitor, err
}

func (smc Client) describeJobDefinition(ctx context.Context, kind lib.MonitorKind, name string) (imageURI, roleArn string, err error) {
	switch kind {
	case lib.MonitorKindDataQuality:
		var out *sagemaker.DescribeDataQualityJobDefinitionOutput
		err = smc.call("DescribeDataQualityJobDefinition", func() (err error) {
			out, err = smc.metadataClient.DescribeDataQualityJobDefinitionWithContext(ctx, &sagemaker.DescribeDataQualityJobDefinitionInput{
				JobDefinitionName: aws.String(name),
			})
			return err
		})
		if err == nil && out.DataQualityAppSpecification != nil {
			imageURI = aws.StringValue(out.DataQualityAppSpecification.ImageUri)
		}
		if err == nil {
			roleArn = aws.StringValue(out.RoleArn)
		}
	case lib.MonitorKindModelQuality:
		var out *sagemaker.DescribeModelQualityJobDefinitionOutput
		err = smc.call("DescribeModelQualityJobDefinition", func() (err error) {
			out, err = smc.metadataClient.DescribeModelQualityJobDefinitionWithContext(ctx, &sagemaker.DescribeModelQualityJobDefinitionInput{
				JobDefinitionName: aws.String(name),
			})
			return err
		})
		if err == nil && out.ModelQualityAppSpecification != nil {
			imageURI = aws.StringValue(out.ModelQualityAppSpecification.ImageUri)
		}
		if err == nil {
			roleArn = aws.StringValue(out.RoleArn)
		}
	case lib.MonitorKindModelBias:
		var out *sagemaker.DescribeModelBiasJobDefinitionOutput
		err = smc.call("DescribeModelBiasJobDefinition", func() (err error) {
			out, err = smc.metadataClient.DescribeModelBiasJobDefinitionWithContext(ctx, &sagemaker.DescribeModelBiasJobDefinitionInput{
				JobDefinitionName: aws.String(name),
			})
			return err
		})
		if err == nil && out.ModelBiasAppSpecification != nil {
			imageURI = aws.StringValue(out.ModelBiasAppSpecification.ImageUri)
		}
		if err == nil {
			roleArn = aws.StringValue(out.RoleArn)
		}
	case lib.MonitorKindModelExplainability:
		var out *sagemaker.DescribeModelExplainabilityJobDefinitionOutput
		err = smc.call("DescribeModelExplainabilityJobDefinition", func() (err error) {
			out, err = smc.metadataClient.DescribeModelExplainabilityJobDefinitionWithContext(ctx, &sagemaker.DescribeModelExplainabilityJobDefinitionInput{
				JobDefinitionName: aws.String(name),
			})
			return err
		})
		if err == nil && out.ModelExplainabilityAppSpecification != nil {
			imageURI = aws.StringValue(out.ModelExplainabilityAppSpecification.ImageUri)
		}
		if err == nil {
			roleArn = aws.StringValue(out.RoleArn)
		}
	}
	return imageURI, roleArn, err
}
