package main

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/antflydb/catalog/internal/catalog"
	"github.com/antflydb/catalog/internal/jsonutil"
	"github.com/antflydb/catalog/internal/logging"
)

func init() {
	jsonutil.SetConfig(jsonutil.Config{
		Marshal:    sonic.Marshal,
		Unmarshal:  sonic.Unmarshal,
		NewEncoder: func(w io.Writer) jsonutil.Encoder { return encoder.NewStreamEncoder(w) },
		NewDecoder: func(r io.Reader) jsonutil.Decoder { return decoder.NewStreamDecoder(r) },
	})
}

func newLogger() (*zap.Logger, error) {
	return logging.New(&logging.Config{
		Style: logging.Style(viper.GetString("log-style")),
		Level: viper.GetString("log-level"),
	})
}

// buildEngine constructs a catalog.Engine from the layered viper config
// common to every subcommand, including the execution settings (base URL
// override and auth tokens).
func buildEngine(logger *zap.Logger) (*catalog.Engine, error) {
	return catalog.New(catalog.Config{
		SpecDir:          viper.GetString("spec-dir"),
		IndexPath:        viper.GetString("index-path"),
		DerefMode:        viper.GetString("deref-mode"),
		SemanticEnabled:  viper.GetBool("semantic"),
		ExecutionEnabled: viper.GetBool("execution"),
		BaseURLOverride:  viper.GetString("base-url"),
		APIKey:           viper.GetString("api-key"),
		APIToken:         viper.GetString("api-token"),
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
		Logger:           logger,
	})
}
