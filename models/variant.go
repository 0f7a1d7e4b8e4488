package models

// Variant is one selectable cake of the showcase.
type Variant struct {
	Key    string `yaml:"key" json:"key"`
	Label  string `yaml:"label" json:"label"`
	Symbol string `yaml:"symbol" json:"symbol"`
}
