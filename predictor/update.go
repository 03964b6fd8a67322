package predictor

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

// UpdateEndpointOptions configures UpdateEndpoint. The zero value does not
// wait for the endpoint to return to service; set Wait to block.
type UpdateEndpointOptions struct {
	InitialInstanceCount mo.Option[int64]
	InstanceType         string
	AcceleratorType      string
	ModelName            string
	Tags                 []lib.Tag
	KmsKey               string
	DataCaptureConfig    *lib.DataCaptureConfig
	MaxInstanceCount     mo.Option[int64]
	MinInstanceCount     mo.Option[int64]
	Wait                 bool
}

func (o UpdateEndpointOptions) replacesVariant() bool {
	return o.InitialInstanceCount.IsPresent() || o.InstanceType != "" || o.AcceleratorType != "" || o.ModelName != ""
}

// UpdateEndpoint points the endpoint at a new endpoint config cloned from the
// current one. Instance count, instance type, accelerator type and model name
// replace the production variants; the remaining fields override the cloned
// config.
func (p *Predictor) UpdateEndpoint(ctx context.Context, opts UpdateEndpointOptions) error {
	var variants []lib.ProductionVariant
	if opts.replacesVariant() {
		variant, err := p.newProductionVariant(ctx, opts)
		if err != nil {
			return err
		}
		variants = []lib.ProductionVariant{variant}
	}

	currentConfigName, err := p.getEndpointConfigName(ctx)
	if err != nil {
		return err
	}
	newConfigName := lib.NameFromBase(currentConfigName, p.clock.Now())
	err = p.session.CreateEndpointConfigFromExisting(ctx, currentConfigName, newConfigName, lib.EndpointConfigOverrides{
		Tags:               opts.Tags,
		KmsKeyID:           opts.KmsKey,
		DataCaptureConfig:  opts.DataCaptureConfig,
		ProductionVariants: variants,
		EndpointType:       p.endpointType(),
	})
	if err != nil {
		return err
	}
	if err := p.session.UpdateEndpoint(ctx, p.endpointName, newConfigName, opts.Wait); err != nil {
		return err
	}
	p.logger.Info("updated endpoint",
		zap.String("endpoint", p.endpointName),
		zap.String("endpoint_config", newConfigName),
	)
	p.endpointConfigName = newConfigName
	return nil
}

func (p *Predictor) newProductionVariant(ctx context.Context, opts UpdateEndpointOptions) (lib.ProductionVariant, error) {
	count, hasCount := opts.InitialInstanceCount.Get()
	if opts.InstanceType == "" || !hasCount {
		return lib.ProductionVariant{}, fmt.Errorf(
			"%w: missing initial instance count and/or instance type: initial_instance_count=%s, instance_type=%q, accelerator_type=%q, model_name=%q",
			lib.ErrInvalidArgument, formatOption(opts.InitialInstanceCount), opts.InstanceType, opts.AcceleratorType, opts.ModelName,
		)
	}
	modelName := opts.ModelName
	if modelName == "" {
		names, err := p.getModelNames(ctx)
		if err != nil {
			return lib.ProductionVariant{}, err
		}
		switch len(names) {
		case 0:
			return lib.ProductionVariant{}, fmt.Errorf("%w: endpoint %s has no model to default to", lib.ErrInvalidArgument, p.endpointName)
		case 1:
			modelName = names[0]
		default:
			return lib.ProductionVariant{}, fmt.Errorf(
				"%w: unable to choose a default model for a new endpoint config because the endpoint has multiple models: %s",
				lib.ErrAmbiguousConfiguration, strings.Join(names, ", "),
			)
		}
	} else {
		p.modelNames = []string{modelName}
	}

	variant := lib.NewProductionVariant(modelName, opts.InstanceType, count, opts.AcceleratorType)
	scaling := lib.ManagedInstanceScaling{
		MinInstanceCount: opts.MinInstanceCount.OrEmpty(),
		MaxInstanceCount: opts.MaxInstanceCount.OrEmpty(),
	}
	if scaling.MinInstanceCount > 0 || scaling.MaxInstanceCount > 0 {
		variant.ManagedInstanceScaling = &scaling
	}
	return variant, nil
}

func formatOption(o mo.Option[int64]) string {
	if v, ok := o.Get(); ok {
		return fmt.Sprint(v)
	}
	return "none"
}

// UpdatePredictorOptions configures UpdatePredictor. The zero value returns
// as soon as the update is accepted; set Wait to block until the inference
// component is in service.
type UpdatePredictorOptions struct {
	// ModelName, when set, is deployed instead of the container fields.
	ModelName string
	ImageURI  string
	ModelData string
	Env       map[string]string

	ModelDataDownloadTimeout           mo.Option[int64]
	ContainerStartupHealthCheckTimeout mo.Option[int64]

	Resources *lib.ResourceRequirements
	Wait      bool
}

// UpdatePredictor updates the inference component behind the predictor.
func (p *Predictor) UpdatePredictor(ctx context.Context, opts UpdatePredictorOptions) error {
	if p.componentName == "" {
		return fmt.Errorf("%w: no inference component exists for the specified model, ensure that you deployed the inference component and try again",
			lib.ErrUnsupportedOperation)
	}
	return p.session.UpdateInferenceComponent(ctx, p.componentUpdate(opts), opts.Wait)
}

func (p *Predictor) componentUpdate(opts UpdatePredictorOptions) lib.InferenceComponentUpdate {
	spec := lib.InferenceComponentSpecification{}
	if opts.ModelName != "" {
		spec.ModelName = opts.ModelName
	} else {
		container := lib.InferenceComponentContainer{
			Image:       opts.ImageURI,
			ArtifactURL: opts.ModelData,
			Environment: opts.Env,
		}
		if !container.Empty() {
			spec.Container = &container
		}
	}
	startup := lib.InferenceComponentStartupParameters{
		ModelDataDownloadTimeoutInSeconds:           opts.ModelDataDownloadTimeout.OrEmpty(),
		ContainerStartupHealthCheckTimeoutInSeconds: opts.ContainerStartupHealthCheckTimeout.OrEmpty(),
	}
	if !startup.Empty() {
		spec.StartupParameters = &startup
	}

	update := lib.InferenceComponentUpdate{Name: p.componentName}
	if r := opts.Resources; r != nil {
		spec.ComputeResourceRequirements = r.ComputeResourceRequirements()
		if r.CopyCount > 0 {
			update.RuntimeConfig = &lib.InferenceComponentRuntimeConfig{CopyCount: r.CopyCount}
		}
	}
	if spec != (lib.InferenceComponentSpecification{}) {
		update.Specification = &spec
	}
	return update
}
