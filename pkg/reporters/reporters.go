package reporters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// Supported reporter types.
	TypeBeacon = "beacon"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	beaconDefaultTimeoutSeconds = 5
)

// configFile represents the structure of the reporters configuration file.
type configFile struct {
	Reporters []ReporterConfig `json:"reporters" yaml:"reporters"`
}

// ReporterConfig represents a single reporter entry declared in config files.
type ReporterConfig struct {
	ID      string        `json:"id" yaml:"id"`
	Type    string        `json:"type" yaml:"type"`
	Enabled *bool         `json:"enabled" yaml:"enabled"`
	Beacon  *BeaconConfig `json:"beacon" yaml:"beacon"`
	SQS     *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSConfig    `json:"sns" yaml:"sns"`
	PubSub  *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// BeaconConfig posts clicks back to the search API. An empty Base falls back
// to the process-wide API base.
type BeaconConfig struct {
	Base           string            `json:"base" yaml:"base"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSAuth holds optional static credentials; when empty the default AWS
// credential chain is used.
type AWSAuth struct {
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `json:"session_token" yaml:"session_token"`
}

func (a AWSAuth) static() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// SQSConfig holds AWS SQS specific settings.
type SQSConfig struct {
	QueueURL string `json:"uri" yaml:"uri"`
	Region   string `json:"region" yaml:"region"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	AWSAuth  `yaml:",inline"`
}

// SNSConfig holds AWS SNS specific settings.
type SNSConfig struct {
	TopicARN string `json:"topic_arn" yaml:"topic_arn"`
	Region   string `json:"region" yaml:"region"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	AWSAuth  `yaml:",inline"`
}

// PubSubConfig holds Google Cloud Pub/Sub settings.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
}

// ConfigRegistry materializes reporter definitions loaded from config files.
type ConfigRegistry struct {
	mu        sync.RWMutex
	reporters []ReporterConfig
	idx       map[string]ReporterConfig
}

// LoadRegistry loads the reporter registry from a YAML/JSON file.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("reporters file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reporters file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read reporters file: %w", err)
	}

	fileReg, err := parseReporterRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return newConfigRegistry(fileReg.Reporters)
}

func newConfigRegistry(cfgs []ReporterConfig) (*ConfigRegistry, error) {
	reg := &ConfigRegistry{
		reporters: make([]ReporterConfig, len(cfgs)),
		idx:       make(map[string]ReporterConfig, len(cfgs)),
	}

	for i := range cfgs {
		cfg := sanitizeReporterConfig(cfgs[i])
		if err := validateReporterConfig(cfg); err != nil {
			return nil, fmt.Errorf("reporters[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate reporter id %q", cfg.ID)
		}
		reg.reporters[i] = cfg
		reg.idx[cfg.ID] = cfg
	}

	return reg, nil
}

// parseReporterRegistry attempts to decode the reporters file content.
func parseReporterRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err != nil {
			errs = append(errs, fmt.Errorf("decode %s reporters: %w", d.name, err))
			continue
		}
		return reg, nil
	}

	return configFile{}, errors.Join(append([]error{errors.New("reporters file format not recognized (expected YAML or JSON)")}, errs...)...)
}

// sanitizeReporterConfig trims and normalizes the reporter config fields.
func sanitizeReporterConfig(cfg ReporterConfig) ReporterConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}
	if cfg.Beacon != nil {
		c := *cfg.Beacon
		c.Base = strings.TrimSpace(c.Base)
		c.Headers = sanitizeHeaders(c.Headers)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = beaconDefaultTimeoutSeconds
		}
		cfg.Beacon = &c
	}
	if cfg.SQS != nil {
		c := *cfg.SQS
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		c.Region = strings.TrimSpace(c.Region)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		cfg.SQS = &c
	}
	if cfg.SNS != nil {
		c := *cfg.SNS
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		c.Region = strings.TrimSpace(c.Region)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		cfg.SNS = &c
	}
	if cfg.PubSub != nil {
		c := *cfg.PubSub
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		cfg.PubSub = &c
	}

	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateReporterConfig checks that required fields are present.
func validateReporterConfig(cfg ReporterConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for reporter %q", cfg.ID)
	case TypeBeacon:
		// Beacon needs no block; the API base is resolved at send time.
	case TypeSQS:
		if cfg.SQS == nil {
			return fmt.Errorf("sqs config required for reporter %q", cfg.ID)
		}
		if cfg.SQS.QueueURL == "" {
			return fmt.Errorf("sqs.uri is required for reporter %q", cfg.ID)
		}
		if cfg.SQS.Region == "" {
			return fmt.Errorf("sqs.region is required for reporter %q", cfg.ID)
		}
	case TypeSNS:
		if cfg.SNS == nil {
			return fmt.Errorf("sns config required for reporter %q", cfg.ID)
		}
		if cfg.SNS.TopicARN == "" {
			return fmt.Errorf("sns.topic_arn is required for reporter %q", cfg.ID)
		}
		if cfg.SNS.Region == "" {
			return fmt.Errorf("sns.region is required for reporter %q", cfg.ID)
		}
	case TypePubSub:
		if cfg.PubSub == nil {
			return fmt.Errorf("pubsub config required for reporter %q", cfg.ID)
		}
		if cfg.PubSub.ProjectID == "" || cfg.PubSub.Topic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.topic are required for reporter %q", cfg.ID)
		}
	}
	return nil
}

// ByID returns the reporter config by id.
func (r *ConfigRegistry) ByID(id string) (ReporterConfig, bool) {
	if r == nil {
		return ReporterConfig{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return ReporterConfig{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[id]
	return cfg, ok
}

// All returns all configured reporters.
func (r *ConfigRegistry) All() []ReporterConfig {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ReporterConfig, len(r.reporters))
	copy(out, r.reporters)
	return out
}

// Enabled returns reporters that are enabled.
func (r *ConfigRegistry) Enabled() []ReporterConfig {
	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]ReporterConfig, 0, len(all))
	for _, cfg := range all {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (cfg ReporterConfig) EnabledValue() bool {
	if cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}
