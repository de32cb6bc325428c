package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KingdomFile represents the top-level YAML structure of a preset file.
type KingdomFile struct {
	Kingdoms []KingdomPreset `yaml:"kingdoms"`
}

// KingdomPreset is a named kingdom: a list of card names and, optionally, the
// sets used to fill it up when it names fewer than KingdomSize cards.
type KingdomPreset struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
	Sets  []string `yaml:"sets,omitempty"`
}

// Resolve looks up every card of the preset in reg.
func (k KingdomPreset) Resolve(reg *Registry) ([]*CardType, error) {
	types, err := reg.LookupAll(k.Cards)
	if err != nil {
		return nil, fmt.Errorf("kingdom %q: %w", k.Name, err)
	}
	return types, nil
}

// ParseKingdoms decodes a preset document.
func ParseKingdoms(data []byte) (KingdomFile, error) {
	var kf KingdomFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return KingdomFile{}, fmt.Errorf("parse kingdom YAML: %w", err)
	}
	return kf, nil
}

// ParseKingdomFile reads a preset file and returns its kingdoms in file order.
func ParseKingdomFile(path string) ([]KingdomPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kf, err := ParseKingdoms(data)
	if err != nil {
		return nil, err
	}
	return kf.Kingdoms, nil
}

// KingdomByName returns the preset with the given name (case-insensitive).
func KingdomByName(path, name string) (KingdomPreset, error) {
	kingdoms, err := ParseKingdomFile(path)
	if err != nil {
		return KingdomPreset{}, err
	}
	for _, k := range kingdoms {
		if normalizeName(k.Name) == normalizeName(name) {
			return k, nil
		}
	}
	return KingdomPreset{}, fmt.Errorf("kingdom %q not found in %s", name, path)
}

// KingdomByNumber returns the Nth preset (1-indexed).
func KingdomByNumber(path string, n int) (KingdomPreset, error) {
	kingdoms, err := ParseKingdomFile(path)
	if err != nil {
		return KingdomPreset{}, err
	}
	if n < 1 || n > len(kingdoms) {
		return KingdomPreset{}, fmt.Errorf("kingdom %d not found (have %d kingdoms)", n, len(kingdoms))
	}
	return kingdoms[n-1], nil
}
