package web

import (
	"fmt"
	"os"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

// KingdomInfo is the JSON representation of a preset for /api/kingdoms.
type KingdomInfo struct {
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Sets   []string   `json:"sets,omitempty"`
	Cards  []CardInfo `json:"cards"`
}

// loadKingdoms reads the preset file and resolves every card against reg.
// Presets naming unknown cards are reported as errors.
func loadKingdoms(path string, reg *game.Registry) ([]KingdomInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kf, err := game.ParseKingdoms(data)
	if err != nil {
		return nil, err
	}

	kingdoms := make([]KingdomInfo, 0, len(kf.Kingdoms))
	for i, k := range kf.Kingdoms {
		types, err := k.Resolve(reg)
		if err != nil {
			return nil, fmt.Errorf("preset %d: %w", i+1, err)
		}
		ki := KingdomInfo{Number: i + 1, Name: k.Name, Sets: k.Sets}
		for _, t := range types {
			ki.Cards = append(ki.Cards, newCardInfo(t))
		}
		kingdoms = append(kingdoms, ki)
	}
	return kingdoms, nil
}
