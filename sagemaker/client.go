package sagemaker

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/aws/aws-sdk-go/service/sagemaker/sagemakeriface"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime/sagemakerruntimeiface"
	"github.com/raulk/clock"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
	"smpredict/lib/timer"
	"smpredict/s3"
)

type SagemakerArgs struct {
	Region        string        `arg:"--region,env:AWS_REGION,help:AWS region"`
	DefaultBucket string        `arg:"--default-bucket,env:SAGEMAKER_DEFAULT_BUCKET,help:Bucket for data capture when no destination is configured"`
	PollInterval  time.Duration `arg:"--poll-interval,env:SAGEMAKER_POLL_INTERVAL,help:Interval between status checks while waiting" default:"15s"`
}

func NewClient(args SagemakerArgs, logger *zap.Logger) (Client, error) {
	sess := session.Must(session.NewSession(
		&aws.Config{
			Region:                        aws.String(args.Region),
			CredentialsChainVerboseErrors: aws.Bool(true),
		},
	))
	runtime := sagemakerruntime.New(sess)
	metadata := sagemaker.New(sess)
	return NewClientWithAPI(args, runtime, metadata, s3.NewClientFromSession(sess), clock.New(), logger), nil
}

// NewClientWithAPI wires a client around already constructed service clients.
func NewClientWithAPI(
	args SagemakerArgs,
	runtime sagemakerruntimeiface.SageMakerRuntimeAPI,
	metadata sagemakeriface.SageMakerAPI,
	objects s3.Client,
	clk clock.Clock,
	logger *zap.Logger,
) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if args.PollInterval <= 0 {
		args.PollInterval = 15 * time.Second
	}
	return Client{
		args:           args,
		runtimeClient:  runtime,
		metadataClient: metadata,
		s3Client:       objects,
		clock:          clk,
		logger:         logger,
	}
}

// Client is the Session backed by the SageMaker, SageMaker runtime and S3
// APIs. Remote errors are returned as the SDK produced them.
type Client struct {
	args           SagemakerArgs
	runtimeClient  sagemakerruntimeiface.SageMakerRuntimeAPI
	metadataClient sagemakeriface.SageMakerAPI
	s3Client       s3.Client
	clock          clock.Clock
	logger         *zap.Logger
}

var _ lib.Session = Client{}

func (smc Client) Region() string {
	return smc.args.Region
}

func (smc Client) call(operation string, fn func() error) error {
	return smc.callExpecting(operation, fn, nil)
}

// callExpecting is call for operations where some errors are an expected
// outcome; those are returned without being counted or logged.
func (smc Client) callExpecting(operation string, fn func() error, expected func(error) bool) error {
	t := timer.Start(operation)
	err := fn()
	if err != nil && expected != nil && expected(err) {
		t.Stop()
		return err
	}
	if t.Done(err) != nil {
		smc.logger.Warn("sagemaker call failed", zap.String("operation", operation), zap.Error(err))
	}
	return err
}
