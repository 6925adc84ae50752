package creature

import (
	"fmt"
	"strings"
)

// AnimalType is the species a habit's creature was born as. It never changes
// after creation.
type AnimalType string

const (
	AnimalDragon  AnimalType = "dragon"
	AnimalPhoenix AnimalType = "phoenix"
	AnimalFox     AnimalType = "fox"
	AnimalLion    AnimalType = "lion"
	AnimalUnicorn AnimalType = "unicorn"
	AnimalPanda   AnimalType = "panda"
	AnimalOwl     AnimalType = "owl"
)

// DefaultAnimal is used when the user doesn't pick a species.
const DefaultAnimal = AnimalDragon

// DefaultName is the creature name before the user renames it.
const DefaultName = "Little One"

type animalInfo struct {
	name  string
	emoji string
}

var animals = map[AnimalType]animalInfo{
	AnimalDragon:  {name: "Dragon", emoji: "🐉"},
	AnimalPhoenix: {name: "Phoenix", emoji: "🦅"},
	AnimalFox:     {name: "Fox", emoji: "🦊"},
	AnimalLion:    {name: "Lion", emoji: "🦁"},
	AnimalUnicorn: {name: "Unicorn", emoji: "🦄"},
	AnimalPanda:   {name: "Panda", emoji: "🐼"},
	AnimalOwl:     {name: "Owl", emoji: "🦉"},
}

func (a AnimalType) IsValid() bool {
	_, ok := animals[a]
	return ok
}

func ParseAnimalType(input string) (AnimalType, error) {
	a := AnimalType(strings.TrimSpace(strings.ToLower(input)))
	if a == "" {
		return DefaultAnimal, nil
	}
	if !a.IsValid() {
		return "", fmt.Errorf("invalid animal type: %q", input)
	}
	return a, nil
}

// DisplayName returns the species name, e.g. "Dragon".
func (a AnimalType) DisplayName() string {
	if info, ok := animals[a]; ok {
		return info.name
	}
	return animals[DefaultAnimal].name
}

// Emoji returns the base species glyph, before stage decoration.
func (a AnimalType) Emoji() string {
	if info, ok := animals[a]; ok {
		return info.emoji
	}
	return animals[DefaultAnimal].emoji
}

// AnimalTypes lists the selectable species in a stable order.
func AnimalTypes() []AnimalType {
	return []AnimalType{
		AnimalDragon, AnimalPhoenix, AnimalFox, AnimalLion,
		AnimalUnicorn, AnimalPanda, AnimalOwl,
	}
}
