package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"gopkg.in/yaml.v3"
)

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	doc := mapping(
		pair("version", scalar(strconv.Itoa(cfg.Version), "!!int"), ""),
		pair("api", mapping(
			pair("url", str(cfg.API.URL), "Monitoring API base URL"),
			pair("username", str(cfg.API.Username), ""),
			pair("password", str(cfg.API.Password), "Use ${VAR} to read the password from the environment"),
			pair("insecure_skip_verify", scalar(strconv.FormatBool(cfg.API.InsecureSkipVerify), "!!bool"), ""),
			pair("timeout", str(cfg.API.Timeout.String()), ""),
		), ""),
		pair("poll", mapping(
			pair("interval", str(cfg.Poll.Interval.String()), ""),
		), ""),
		pair("board", mapping(
			pair("slots", scalar(strconv.Itoa(cfg.Board.Slots), "!!int"), ""),
			pair("timezone", str(cfg.Board.Timezone), ""),
		), ""),
		pair("server", mapping(
			pair("listen", str(cfg.Server.Listen), "Address for the HTTP board, e.g. :8080. Empty disables it"),
		), ""),
	)
	root := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(buf.String()), nil
}

// Write saves cfg to path. Existing files are only replaced when force is
// set. The file is created owner-readable only since it may hold a password.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it.")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to create config directory", "Check directory permissions")
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file", "Check directory permissions")
	}
	return nil
}

type kv struct {
	key, value *yaml.Node
}

func mapping(pairs ...kv) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		n.Content = append(n.Content, p.key, p.value)
	}
	return n
}

func pair(key string, value *yaml.Node, comment string) kv {
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	if comment != "" {
		k.HeadComment = comment
	}
	return kv{key: k, value: value}
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func str(value string) *yaml.Node {
	return scalar(value, "!!str")
}
