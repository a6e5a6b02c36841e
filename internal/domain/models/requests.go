package models

// Requests for the HTTP API. Bound by echo, then defaults and validation run.

type AnalyzeRequest struct {
	Symbol    string  `query:"symbol" json:"symbol" validate:"required"`
	Mode      string  `query:"mode" json:"mode" default:"balanced" validate:"oneof=conservative balanced aggressive"`
	Timeframe string  `query:"timeframe" json:"timeframe" default:"short" validate:"oneof=short medium"`
	Horizon   int     `query:"horizon" json:"horizon" default:"365" validate:"gte=90,lte=3650"`
	Capital   float64 `query:"capital" json:"capital" validate:"gte=0"`
}

type ScreenRequest struct {
	Symbols   []string `json:"symbols" validate:"required,min=1,max=50,dive,required"`
	Mode      string   `json:"mode" default:"balanced" validate:"oneof=conservative balanced aggressive"`
	Timeframe string   `json:"timeframe" default:"short" validate:"oneof=short medium"`
	Horizon   int      `json:"horizon" default:"365" validate:"gte=90,lte=3650"`
	Capital   float64  `json:"capital" default:"100000" validate:"gt=0"`
}

type PositionSizeRequest struct {
	Capital float64 `json:"capital" validate:"gt=0"`
	Entry   float64 `json:"entry" validate:"gt=0"`
	Stop    float64 `json:"stop" validate:"gt=0"`
	Mode    string  `json:"mode" default:"balanced" validate:"oneof=conservative balanced aggressive"`
}

type RiskRewardRequest struct {
	Entry  float64 `json:"entry" validate:"gt=0"`
	Target float64 `json:"target" validate:"gt=0"`
	Stop   float64 `json:"stop" validate:"gt=0"`
	Mode   string  `json:"mode" default:"balanced" validate:"oneof=conservative balanced aggressive"`
}

type BacktestRequest struct {
	Symbol    string  `json:"symbol" validate:"required"`
	Mode      string  `json:"mode" default:"balanced" validate:"oneof=conservative balanced aggressive"`
	Timeframe string  `json:"timeframe" default:"short" validate:"oneof=short medium"`
	Capital   float64 `json:"capital" default:"100000" validate:"gt=0"`
	From      string  `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string  `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type BacktestRunRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}
