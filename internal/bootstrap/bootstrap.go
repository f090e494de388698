// Package bootstrap wires configuration and clients into a ready handler. It
// is shared by the Lambda binary and the local runner.
package bootstrap

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"gm-poster/handler"
	"gm-poster/internal/config"
	"gm-poster/internal/integrations/openai"
	"gm-poster/internal/integrations/paramstore"
	"gm-poster/internal/integrations/twitter"
	"gm-poster/internal/usecase"
)

// LoadConfig reads configuration, creating an SSM client only when
// PARAM_PREFIX asks for one.
func LoadConfig(ctx context.Context, getenv func(string) string) (config.Config, error) {
	var params config.ParamGetter
	if config.NeedsParamStore(getenv) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return config.Config{}, fmt.Errorf("bootstrap: load AWS config: %w", err)
		}
		ps, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return config.Config{}, fmt.Errorf("bootstrap: create SSM client: %w", err)
		}
		params = ps
	}
	return config.Load(ctx, getenv, params)
}

type options struct {
	publisher usecase.Publisher
}

type Option func(*options)

// WithPublisher replaces the Twitter client, e.g. for dry runs.
func WithPublisher(p usecase.Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

func NewHandler(cfg config.Config, opts ...Option) (*handler.Handler, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	llm, err := openai.NewClient(cfg.Secrets.OpenAIAPIKey, openai.WithBaseURL(cfg.OpenAIBaseURL))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create OpenAI client: %w", err)
	}

	pub := o.publisher
	if pub == nil {
		tw, err := twitter.NewClient(twitter.Credentials{
			ConsumerKey:       cfg.Secrets.ConsumerKey,
			ConsumerSecret:    cfg.Secrets.ConsumerSecret,
			AccessToken:       cfg.Secrets.AccessToken,
			AccessTokenSecret: cfg.Secrets.AccessTokenSecret,
		}, twitter.WithBaseURL(cfg.TwitterBaseURL))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: create Twitter client: %w", err)
		}
		pub = tw
	}

	svc, err := usecase.NewPostService(llm, pub, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create post service: %w", err)
	}
	return handler.NewHandler(svc)
}
