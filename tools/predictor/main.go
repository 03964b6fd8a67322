package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	lib "smpredict/lib/sagemaker"
	"smpredict/lib/serde"
	"smpredict/predictor"
	"smpredict/s3"
	"smpredict/sagemaker"
)

type InvokeCmd struct {
	Framework        string `arg:"--framework,help:xgboost, sklearn, pytorch or tensorflow; raw bytes when empty"`
	Data             string `arg:"--data,help:request body, or JSON for framework serializers"`
	File             string `arg:"--file,help:read the request body from this file"`
	PayloadKey       string `arg:"--payload-key,help:send the staged payload object under this key"`
	ContentType      string `arg:"--content-type"`
	Accept           string `arg:"--accept"`
	TargetModel      string `arg:"--target-model"`
	TargetVariant    string `arg:"--target-variant"`
	InferenceID      string `arg:"--inference-id"`
	CustomAttributes string `arg:"--custom-attributes"`
}

type UpdateEndpointCmd struct {
	InstanceCount    *int64 `arg:"--instance-count"`
	InstanceType     string `arg:"--instance-type"`
	AcceleratorType  string `arg:"--accelerator-type"`
	ModelName        string `arg:"--model-name"`
	KmsKey           string `arg:"--kms-key"`
	MinInstanceCount *int64 `arg:"--min-instance-count"`
	MaxInstanceCount *int64 `arg:"--max-instance-count"`
	NoWait           bool   `arg:"--no-wait"`
}

type UpdatePredictorCmd struct {
	ModelName       string            `arg:"--model-name"`
	Image           string            `arg:"--image"`
	ModelData       string            `arg:"--model-data"`
	Env             map[string]string `arg:"--env"`
	DownloadTimeout *int64            `arg:"--download-timeout,help:model data download timeout in seconds"`
	HealthTimeout   *int64            `arg:"--health-check-timeout,help:container startup health check timeout in seconds"`
	CPUs            float64           `arg:"--cpus"`
	Accelerators    float64           `arg:"--accelerators"`
	MinMemoryMB     int64             `arg:"--min-memory-mb"`
	MaxMemoryMB     int64             `arg:"--max-memory-mb"`
	CopyCount       int64             `arg:"--copy-count"`
	Wait            bool              `arg:"--wait"`
}

type DeleteCmd struct {
	Models     bool `arg:"--models,help:also delete the models behind the predictor"`
	KeepConfig bool `arg:"--keep-config,help:keep the endpoint config of a model based endpoint"`
	Wait       bool `arg:"--wait"`
}

type DataCaptureCmd struct {
	Disable     bool   `arg:"--disable"`
	Destination string `arg:"--destination,help:s3 URI to capture to"`
	Sampling    int64  `arg:"--sampling-percentage" default:"20"`
}

type ListRelatedModelsCmd struct {
	Status     string `arg:"--status"`
	MaxResults int64  `arg:"--max-results"`
	NextToken  string `arg:"--next-token"`
}

type StagePayloadCmd struct {
	Key    string `arg:"--key,required"`
	File   string `arg:"--file"`
	Remove bool   `arg:"--remove,help:delete the staged object instead of uploading"`
}

type PredictorArgs struct {
	sagemaker.SagemakerArgs
	Endpoint  string `arg:"--endpoint,env:SAGEMAKER_ENDPOINT,required"`
	Component string `arg:"--component,env:SAGEMAKER_INFERENCE_COMPONENT"`
	Dev       bool   `arg:"--dev" default:"false"`

	Invoke            *InvokeCmd            `arg:"subcommand:invoke"`
	UpdateEndpoint    *UpdateEndpointCmd    `arg:"subcommand:update-endpoint"`
	UpdatePredictor   *UpdatePredictorCmd   `arg:"subcommand:update-predictor"`
	Delete            *DeleteCmd            `arg:"subcommand:delete"`
	DataCapture       *DataCaptureCmd       `arg:"subcommand:data-capture"`
	ListMonitors      *struct{}             `arg:"subcommand:list-monitors"`
	ListRelatedModels *ListRelatedModelsCmd `arg:"subcommand:list-related-models"`
	EndpointContext   *struct{}             `arg:"subcommand:endpoint-context"`
	StagePayload      *StagePayloadCmd      `arg:"subcommand:stage-payload"`
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func optional(v *int64) mo.Option[int64] {
	if v == nil {
		return mo.None[int64]()
	}
	return mo.Some(*v)
}

func readBody(data, file string) ([]byte, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		return b, errors.Wrapf(err, "failed to read %s", file)
	}
	return []byte(data), nil
}

func invoke(ctx context.Context, client sagemaker.Client, args PredictorArgs, logger *zap.Logger) (any, error) {
	cmd := args.Invoke
	opts := []predictor.Option{predictor.WithComponentName(args.Component), predictor.WithLogger(logger)}
	if cmd.Framework != "" {
		ser, de, err := serde.ForFramework(cmd.Framework)
		if err != nil {
			return nil, err
		}
		opts = append(opts, predictor.WithSerializer(ser), predictor.WithDeserializer(de))
	}
	p := predictor.New(args.Endpoint, client, opts...)
	if cmd.ContentType != "" {
		p.SetContentType(cmd.ContentType)
	}
	if cmd.Accept != "" {
		p.SetAccept(cmd.Accept)
	}

	var data any
	if cmd.PayloadKey != "" {
		data = &lib.Payload{ContentType: cmd.ContentType, Accept: cmd.Accept, Body: lib.S3Reference + cmd.PayloadKey + ">"}
	} else {
		body, err := readBody(cmd.Data, cmd.File)
		if err != nil {
			return nil, err
		}
		data = body
		if cmd.Framework != "" {
			var decoded any
			if err := json.Unmarshal(body, &decoded); err != nil {
				return nil, errors.Wrap(err, "framework requests take a JSON encoded body")
			}
			data = decoded
		}
	}
	out, err := p.Predict(ctx, data, lib.PredictOptions{
		TargetModel:      cmd.TargetModel,
		TargetVariant:    cmd.TargetVariant,
		InferenceID:      cmd.InferenceID,
		CustomAttributes: cmd.CustomAttributes,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to invoke endpoint %s", args.Endpoint)
	}
	if b, ok := out.([]byte); ok {
		return string(b), nil
	}
	return out, nil
}

func run(ctx context.Context, p *arg.Parser, args PredictorArgs, logger *zap.Logger) (any, error) {
	client, err := sagemaker.NewClient(args.SagemakerArgs, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sagemaker client")
	}
	pred := predictor.New(args.Endpoint, client,
		predictor.WithComponentName(args.Component),
		predictor.WithLogger(logger),
	)

	switch {
	case args.Invoke != nil:
		return invoke(ctx, client, args, logger)

	case args.UpdateEndpoint != nil:
		cmd := args.UpdateEndpoint
		err := pred.UpdateEndpoint(ctx, predictor.UpdateEndpointOptions{
			InitialInstanceCount: optional(cmd.InstanceCount),
			InstanceType:         cmd.InstanceType,
			AcceleratorType:      cmd.AcceleratorType,
			ModelName:            cmd.ModelName,
			KmsKey:               cmd.KmsKey,
			MinInstanceCount:     optional(cmd.MinInstanceCount),
			MaxInstanceCount:     optional(cmd.MaxInstanceCount),
			Wait:                 !cmd.NoWait,
		})
		return nil, errors.Wrapf(err, "failed to update endpoint %s", args.Endpoint)

	case args.UpdatePredictor != nil:
		cmd := args.UpdatePredictor
		err := pred.UpdatePredictor(ctx, predictor.UpdatePredictorOptions{
			ModelName:                          cmd.ModelName,
			ImageURI:                           cmd.Image,
			ModelData:                          cmd.ModelData,
			Env:                                cmd.Env,
			ModelDataDownloadTimeout:           optional(cmd.DownloadTimeout),
			ContainerStartupHealthCheckTimeout: optional(cmd.HealthTimeout),
			Resources: &lib.ResourceRequirements{
				NumCPUs:         cmd.CPUs,
				NumAccelerators: cmd.Accelerators,
				MinMemoryMB:     cmd.MinMemoryMB,
				MaxMemoryMB:     cmd.MaxMemoryMB,
				CopyCount:       cmd.CopyCount,
			},
			Wait: cmd.Wait,
		})
		return nil, errors.Wrapf(err, "failed to update inference component %s", args.Component)

	case args.Delete != nil:
		cmd := args.Delete
		// Models are resolved before the endpoint config they are listed in
		// disappears.
		if cmd.Models {
			if err := pred.DeleteModel(ctx); err != nil {
				return nil, errors.Wrap(err, "failed to delete models")
			}
		}
		if args.Component == "" && cmd.KeepConfig {
			return nil, errors.Wrap(pred.DeleteEndpoint(ctx, false), "failed to delete endpoint")
		}
		return nil, errors.Wrap(pred.DeletePredictor(ctx, cmd.Wait), "failed to delete predictor")

	case args.DataCapture != nil:
		cmd := args.DataCapture
		if cmd.Destination != "" {
			if _, _, err := s3.ParseURI(cmd.Destination); err != nil {
				return nil, err
			}
		}
		cfg := lib.NewDataCaptureConfig(!cmd.Disable)
		cfg.DestinationS3URI = cmd.Destination
		cfg.SamplingPercentage = cmd.Sampling
		return nil, errors.Wrap(pred.UpdateDataCaptureConfig(ctx, cfg), "failed to update data capture config")

	case args.ListMonitors != nil:
		monitors, err := pred.ListMonitors(ctx)
		return monitors, errors.Wrap(err, "failed to list monitors")

	case args.ListRelatedModels != nil:
		cmd := args.ListRelatedModels
		models, next, err := pred.ListRelatedModels(ctx, lib.ListInferenceComponentsQuery{
			StatusEquals: cmd.Status,
			MaxResults:   cmd.MaxResults,
			NextToken:    cmd.NextToken,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list related models")
		}
		return map[string]any{"inference_components": models, "next_token": next}, nil

	case args.EndpointContext != nil:
		ec, err := pred.EndpointContext(ctx)
		return ec, errors.Wrap(err, "failed to load endpoint context")

	case args.StagePayload != nil:
		cmd := args.StagePayload
		if cmd.Remove {
			return nil, errors.Wrapf(client.UnstagePayload(ctx, cmd.Key), "failed to remove payload %s", cmd.Key)
		}
		f, err := os.Open(cmd.File)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", cmd.File)
		}
		defer f.Close()
		ref, err := client.StagePayload(ctx, f, cmd.Key)
		return ref, errors.Wrap(err, "failed to stage payload")
	}
	p.Fail("missing subcommand")
	return nil, nil
}

func main() {
	var args PredictorArgs
	p := arg.MustParse(&args)

	logger, err := newLogger(args.Dev)
	if err != nil {
		panic(fmt.Errorf("failed to construct logger: %v", err))
	}
	_ = zap.ReplaceGlobals(logger)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	out, err := run(ctx, p, args, logger)
	if err != nil {
		logger.Error("command failed", zap.String("endpoint", args.Endpoint), zap.Error(err))
		os.Exit(1)
	}
	if out == nil {
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal("failed to write output", zap.Error(err))
	}
}
