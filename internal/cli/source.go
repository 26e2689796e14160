package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/flowserve/pkg/adapters/file"
	"github.com/aretw0/flowserve/pkg/adapters/memory"
	"github.com/aretw0/flowserve/pkg/adapters/redis"
	"github.com/aretw0/flowserve/pkg/ports"
)

// BuiltinName is the graph name used when no source is configured.
const BuiltinName = "builtin"

// Source is the graph provenance selected by the configuration.
type Source struct {
	Loader ports.GraphLoader
	// Name identifies the graph in logs.
	Name string
	// Publisher is set when the source can store definitions.
	Publisher ports.GraphPublisher

	closer io.Closer
}

// OpenSource picks the loader: --graph file first, then Redis, then the
// built-in workflow.
func OpenSource(cfg Config) (*Source, error) {
	switch {
	case cfg.GraphPath != "":
		return &Source{
			Loader: file.NewLoader(cfg.GraphPath),
			Name:   strings.TrimSuffix(filepath.Base(cfg.GraphPath), filepath.Ext(cfg.GraphPath)),
		}, nil
	case cfg.RedisAddr != "":
		l := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithKey(cfg.RedisKey),
			redis.WithChannel(cfg.RedisChannel),
		)
		return &Source{Loader: l, Name: l.Key(), Publisher: l, closer: l}, nil
	default:
		def, err := BuiltinWorkflow()
		if err != nil {
			return nil, fmt.Errorf("failed to build builtin workflow: %w", err)
		}
		return &Source{Loader: memory.NewLoader(def), Name: BuiltinName}, nil
	}
}

// Close releases connections held by the loader.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
