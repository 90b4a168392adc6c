package config

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coachdesk/ascend/internal/domain/rank"
)

// LoadRankTable reads a YAML hierarchy override from path. The file holds a
// top-level "ranks" list ordered lowest first; entries follow the rank.Rank
// shape. An empty list is rejected so a bad file cannot silently wipe the
// hierarchy.
func LoadRankTable(_ context.Context, path string) ([]rank.Rank, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	var out struct {
		Ranks []rank.Rank `koanf:"ranks"`
	}
	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if len(out.Ranks) == 0 {
		return nil, fmt.Errorf("%w: rank table %q defines no ranks", ErrInvalidConfig, path)
	}
	for _, r := range out.Ranks {
		if r.Code == "" {
			return nil, fmt.Errorf("%w: rank table %q has an entry without a code", ErrInvalidConfig, path)
		}
	}
	return out.Ranks, nil
}
