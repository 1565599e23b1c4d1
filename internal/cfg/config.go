// Package cfg loads the backporter configuration file.
package cfg

import (
	"io"

	"github.com/pelletier/go-toml"
)

const (
	DefPromotedLabel = "promoted-to-master"
	DefLogFormat     = "logfmt"
	DefLogLevel      = "info"
)

type Config struct {
	GithubAPIToken string `toml:"github_api_token"`
	// BotUser is the github account owning the fork that backport
	// branches are pushed to.
	BotUser string `toml:"bot_user"`
	// ForkCloneURL overrides the push URL of the bot fork. When empty it
	// is derived from BotUser and the repository name.
	ForkCloneURL string `toml:"fork_clone_url"`
	// PromotedLabel must be present on a pull request for it to be
	// backported in commit-range mode.
	PromotedLabel string `toml:"promoted_label"`
	// FilterQuery is an optional jq query that is evaluated against each
	// candidate pull request. Pull requests for which it does not yield a
	// truthy result are skipped.
	FilterQuery           string `toml:"filter_query"`
	MetricsPushgatewayURL string `toml:"metrics_pushgateway_url"`
	LogFormat             string `toml:"log_format"`
	LogTimeKey            string `toml:"log_time_key"`
	LogLevel              string `toml:"log_level"`
}

func Load(reader io.Reader) (*Config, error) {
	result := Config{
		PromotedLabel: DefPromotedLabel,
		LogFormat:     DefLogFormat,
		LogLevel:      DefLogLevel,
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(r)
}
