package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

// hclConfig mirrors Config with HCL block structure:
//
//	nas {
//	  host     = "10.0.0.5"
//	  username = "snap"
//	  password = "$NAS_PASSWORD"
//	}
//
//	destination "Long-term storage" {
//	  share = "photos"
//	  path  = "archive"
//	}
type hclConfig struct {
	NAS            *hclNAS          `hcl:"nas,block"`
	Destinations   []hclDestination `hcl:"destination,block"`
	WebhookURL     *string          `hcl:"webhook_url,optional"`
	IgnorePatterns []string         `hcl:"ignore_patterns,optional"`
	LogDir         *string          `hcl:"log_dir,optional"`
}

type hclNAS struct {
	Host     string `hcl:"host"`
	Port     *int   `hcl:"port,optional"`
	Username string `hcl:"username"`
	Password string `hcl:"password"`
	Domain   string `hcl:"domain,optional"`
}

type hclDestination struct {
	Name  string `hcl:"name,label"`
	Share string `hcl:"share"`
	Path  string `hcl:"path,optional"`
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if raw.NAS != nil {
		cfg.NAS = NAS{
			Host:     raw.NAS.Host,
			Username: raw.NAS.Username,
			Password: raw.NAS.Password,
			Domain:   raw.NAS.Domain,
		}
		if raw.NAS.Port != nil {
			cfg.NAS.Port = *raw.NAS.Port
		}
	}
	for _, d := range raw.Destinations {
		cfg.Destinations = append(cfg.Destinations, Destination(d))
	}
	if raw.WebhookURL != nil {
		cfg.WebhookURL = *raw.WebhookURL
	}
	cfg.IgnorePatterns = raw.IgnorePatterns
	if raw.LogDir != nil {
		cfg.LogDir = *raw.LogDir
	}

	return cfg, nil
}
