package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// readINI parses the analyze_config.ini layout into the nested map viper
// expects: one map per [section], names lower-cased, values kept as strings.
// Both "key = value" and "key: value" are accepted.
func readINI(path string) (map[string]any, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for _, section := range f.Sections() {
		if strings.EqualFold(section.Name(), ini.DefaultSection) {
			if keys := section.KeyStrings(); len(keys) > 0 {
				return nil, fmt.Errorf("key %q is outside of a section", keys[0])
			}
			continue
		}
		values := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			values[key.Name()] = key.String()
		}
		out[section.Name()] = values
	}
	return out, nil
}
