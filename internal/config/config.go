package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	EnvOpenAIAPIKey             = "OPENAI_API_KEY"
	EnvTwitterConsumerKey       = "TWITTER_CONSUMER_KEY"
	EnvTwitterConsumerSecret    = "TWITTER_CONSUMER_SECRET"
	EnvTwitterAccessToken       = "TWITTER_ACCESS_TOKEN_KEY"
	EnvTwitterAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"

	EnvOpenAIModel    = "OPENAI_MODEL"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvTwitterBaseURL = "TWITTER_API_BASE_URL"
	EnvParamPrefix    = "PARAM_PREFIX"

	DefaultModel = "gpt-4"
)

// Secrets holds the five credentials the function cannot run without.
type Secrets struct {
	OpenAIAPIKey      string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Config is read once at process start and is immutable afterwards.
type Config struct {
	Secrets        Secrets
	Model          string
	OpenAIBaseURL  string
	TwitterBaseURL string
	ParamPrefix    string
}

// ParamGetter resolves SSM parameters by full name.
type ParamGetter interface {
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

// MissingSecretsError lists every required secret that could not be resolved.
type MissingSecretsError struct {
	Keys []string
}

func (e *MissingSecretsError) Error() string {
	return "config: essential secrets are missing: " + strings.Join(e.Keys, ", ")
}

type secretSource struct {
	env   string
	param string
	dst   func(*Secrets) *string
}

var secretSources = []secretSource{
	{env: EnvOpenAIAPIKey, param: "openai-api-key", dst: func(s *Secrets) *string { return &s.OpenAIAPIKey }},
	{env: EnvTwitterConsumerKey, param: "twitter-consumer-key", dst: func(s *Secrets) *string { return &s.ConsumerKey }},
	{env: EnvTwitterConsumerSecret, param: "twitter-consumer-secret", dst: func(s *Secrets) *string { return &s.ConsumerSecret }},
	{env: EnvTwitterAccessToken, param: "twitter-access-token", dst: func(s *Secrets) *string { return &s.AccessToken }},
	{env: EnvTwitterAccessTokenSecret, param: "twitter-access-token-secret", dst: func(s *Secrets) *string { return &s.AccessTokenSecret }},
}

// NeedsParamStore reports whether Load will consult SSM for this environment.
func NeedsParamStore(getenv func(string) string) bool {
	return paramPrefix(getenv) != ""
}

// Load builds a Config from the environment. Secrets missing from the
// environment are looked up in SSM under PARAM_PREFIX when it is set; params
// may be nil otherwise. Any secret still absent fails the whole load.
func Load(ctx context.Context, getenv func(string) string, params ParamGetter) (Config, error) {
	if getenv == nil {
		return Config{}, errors.New("config: getenv must not be nil")
	}

	cfg := Config{
		Model:          strings.TrimSpace(getenv(EnvOpenAIModel)),
		OpenAIBaseURL:  strings.TrimSpace(getenv(EnvOpenAIBaseURL)),
		TwitterBaseURL: strings.TrimSpace(getenv(EnvTwitterBaseURL)),
		ParamPrefix:    paramPrefix(getenv),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	var unresolved []secretSource
	for _, src := range secretSources {
		v := strings.TrimSpace(getenv(src.env))
		if v == "" {
			unresolved = append(unresolved, src)
			continue
		}
		*src.dst(&cfg.Secrets) = v
	}

	if len(unresolved) > 0 && cfg.ParamPrefix != "" {
		if params == nil {
			return Config{}, errors.New("config: parameter store client is required when PARAM_PREFIX is set")
		}
		names := make([]string, 0, len(unresolved))
		for _, src := range unresolved {
			names = append(names, cfg.ParamPrefix+"/"+src.param)
		}
		values, err := params.GetParameters(ctx, names)
		if err != nil {
			return Config{}, fmt.Errorf("config: load secrets from parameter store: %w", err)
		}
		remaining := unresolved[:0]
		for i, src := range unresolved {
			v := strings.TrimSpace(values[names[i]])
			if v == "" {
				remaining = append(remaining, src)
				continue
			}
			*src.dst(&cfg.Secrets) = v
		}
		unresolved = remaining
	}

	if len(unresolved) > 0 {
		keys := make([]string, 0, len(unresolved))
		for _, src := range unresolved {
			keys = append(keys, src.env)
		}
		return Config{}, &MissingSecretsError{Keys: keys}
	}
	return cfg, nil
}

func paramPrefix(getenv func(string) string) string {
	return strings.TrimRight(strings.TrimSpace(getenv(EnvParamPrefix)), "/")
}
