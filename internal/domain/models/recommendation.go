package models

// Category is the coarse action class of a recommendation.
type Category string

const (
	CategoryBuy     Category = "BUY"
	CategorySell    Category = "SELL"
	CategoryHold    Category = "HOLD"
	CategoryBlocked Category = "BLOCKED"
)

// Recommendation labels.
const (
	LabelStrongBuy   = "STRONG BUY"
	LabelBuy         = "BUY"
	LabelWeakBuy     = "WEAK BUY"
	LabelHold        = "HOLD"
	LabelWeakSell    = "WEAK SELL"
	LabelSell        = "SELL"
	LabelStrongSell  = "STRONG SELL"
	LabelBuyBlocked  = "AVOID - BUY BLOCKED"
	LabelSellBlocked = "AVOID - SELL BLOCKED"
)

type Recommendation struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Advisory is a non-binding warning raised by the advisory validation pass.
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
