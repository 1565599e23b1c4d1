package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	const file = `
github_api_token = "secret"
bot_user = "backportbot"
promoted_label = "promoted"
filter_query = ".draft == false"
log_format = "json"
`

	config, err := Load(strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, "secret", config.GithubAPIToken)
	assert.Equal(t, "backportbot", config.BotUser)
	assert.Equal(t, "promoted", config.PromotedLabel)
	assert.Equal(t, ".draft == false", config.FilterQuery)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, DefLogLevel, config.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, DefPromotedLabel, config.PromotedLabel)
	assert.Equal(t, DefLogFormat, config.LogFormat)
	assert.Equal(t, DefLogLevel, config.LogLevel)
	assert.Empty(t, config.FilterQuery)
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(strings.NewReader("github_api_token = ["))
	require.Error(t, err)
}
