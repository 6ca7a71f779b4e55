// Package config handles the labsite configuration: built-in defaults, the
// global YAML file, LABSITE_* environment overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matsen/labsite/internal/enrich"
	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publist"
)

// Config is the effective configuration of a run.
type Config struct {
	ORCIDID         string        `yaml:"orcid_id" validate:"required,orcid"`
	ORCIDURL        string        `yaml:"orcid_url" validate:"required,url"`
	MetadataURL     string        `yaml:"metadata_url" validate:"required,url"`
	MaxPublications int           `yaml:"max_publications" validate:"min=0,max=1000"` // 0 keeps every publication
	BatchSize       int           `yaml:"batch_size" validate:"min=1,max=50"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"min=0"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	UserAgent       string        `yaml:"user_agent,omitempty"`
}

const (
	// DefaultORCIDID is the lab's ORCID iD.
	DefaultORCIDID = "0000-0002-2537-5082"
	// DefaultLogLevel keeps the CLI quiet unless something degrades.
	DefaultLogLevel = "warn"
)

// Environment variables that override file values.
const (
	EnvORCIDID         = "LABSITE_ORCID_ID"
	EnvORCIDURL        = "LABSITE_ORCID_URL"
	EnvMetadataURL     = "LABSITE_METADATA_URL"
	EnvMaxPublications = "LABSITE_MAX_PUBLICATIONS"
	EnvBatchSize       = "LABSITE_BATCH_SIZE"
	EnvRequestTimeout  = "LABSITE_REQUEST_TIMEOUT"
	EnvLogLevel        = "LABSITE_LOG_LEVEL"
)

// ErrInvalidConfig is wrapped by every validation and override error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ORCIDID:         DefaultORCIDID,
		ORCIDURL:        orcid.BaseURL,
		MetadataURL:     oaworks.BaseURL,
		MaxPublications: publist.DefaultMax,
		BatchSize:       enrich.DefaultBatchSize,
		RequestTimeout:  enrich.DefaultRequestTimeout,
		LogLevel:        DefaultLogLevel,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// getValidator returns the shared validator, registering the orcid tag
// and reporting fields by their YAML names.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})

		_ = v.RegisterValidation("orcid", func(fl validator.FieldLevel) bool {
			return orcid.ValidateID(fl.Field().String()) == nil
		})

		validate = v
	})
	return validate
}

// Validate checks every field. The ORCID iD is normalized first.
func (c *Config) Validate() error {
	c.ORCIDID = orcid.NormalizeID(c.ORCIDID)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "orcid":
		return fmt.Sprintf("%s %q is not a valid ORCID iD", fe.Field(), fe.Value())
	case "url":
		return fmt.Sprintf("%s %q is not a URL", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// ApplyEnv overrides fields from LABSITE_* variables that are set and
// non-empty. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvORCIDID); ok {
		c.ORCIDID = v
	}
	if v, ok := get(EnvORCIDURL); ok {
		c.ORCIDURL = v
	}
	if v, ok := get(EnvMetadataURL); ok {
		c.MetadataURL = v
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvMaxPublications); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvMaxPublications, v)
		}
		c.MaxPublications = n
	}
	if v, ok := get(EnvBatchSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvBatchSize, v)
		}
		c.BatchSize = n
	}
	if v, ok := get(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, EnvRequestTimeout, v)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Overrides holds command-line values. Nil or empty fields leave the
// configured value alone; a non-nil pointer is applied even when it
// points at zero.
type Overrides struct {
	ORCIDID         string
	MaxPublications *int
	BatchSize       *int
}

// ApplyOverrides copies the set override fields onto c.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.ORCIDID != "" {
		c.ORCIDID = o.ORCIDID
	}
	if o.MaxPublications != nil {
		c.MaxPublications = *o.MaxPublications
	}
	if o.BatchSize != nil {
		c.BatchSize = *o.BatchSize
	}
}

// Resolve builds the effective configuration: defaults, then the global
// file, then the process environment, then o. The result is validated.
func Resolve(o Overrides) (*Config, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
