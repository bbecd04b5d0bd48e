package dto

type RectOutput struct {
	LeftPct   float64 `json:"leftPct"`
	TopPct    float64 `json:"topPct"`
	WidthPct  float64 `json:"widthPct"`
	HeightPct float64 `json:"heightPct"`
}

type TemplateOutput struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Slots         int          `json:"slots"`
	Rects         []RectOutput `json:"rects"`
	Background    string       `json:"background,omitempty"`
	VintageEffect bool         `json:"vintage_effect,omitempty"`
	Effect        string       `json:"effect,omitempty"`
}
