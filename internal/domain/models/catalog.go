package models

// SymbolInfo describes a tradeable instrument offered by the generator.
type SymbolInfo struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Type       MarketType `json:"type"`
	Volatility string     `json:"volatility"`
}

type TimeframeInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AIModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Accuracy    int    `json:"accuracy"`
	Specialty   string `json:"specialty"`
}

// GeneratorCatalog is everything the generator form offers, plus defaults.
type GeneratorCatalog struct {
	Symbols    []SymbolInfo    `json:"symbols"`
	Timeframes []TimeframeInfo `json:"timeframes"`
	Models     []AIModel       `json:"models"`
	Defaults   GenerateRequest `json:"defaults"`
	Threshold  struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"threshold"`
}
