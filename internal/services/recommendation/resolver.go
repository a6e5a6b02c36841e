// Package recommendation maps a confidence figure and gate results onto a
// labelled recommendation.
package recommendation

import (
	"SwingSignal/internal/domain/models"
)

// bandLabels pairs with RecommendationThresholds.Ordered.
var bandLabels = [8]string{
	models.LabelStrongBuy,
	models.LabelBuy,
	models.LabelWeakBuy,
	models.LabelHold,
	models.LabelHold,
	models.LabelWeakSell,
	models.LabelSell,
	models.LabelStrongSell,
}

// Resolve is a pure function of its inputs. A blocked gate on the side the
// confidence leans toward wins over any threshold band.
func Resolve(confidence float64, buy, sell models.GateResult, th models.RecommendationThresholds) models.Recommendation {
	if confidence >= 50 && buy.Blocked {
		return models.Recommendation{Label: models.LabelBuyBlocked, Category: models.CategoryBlocked}
	}
	if confidence < 50 && sell.Blocked {
		return models.Recommendation{Label: models.LabelSellBlocked, Category: models.CategoryBlocked}
	}

	cuts := th.Ordered()
	for i, cut := range cuts {
		if confidence >= cut {
			return labelled(bandLabels[i])
		}
	}
	return labelled(models.LabelStrongSell)
}

func labelled(label string) models.Recommendation {
	return models.Recommendation{Label: label, Category: CategoryOf(label)}
}

// CategoryOf maps a label to its coarse category.
func CategoryOf(label string) models.Category {
	switch label {
	case models.LabelStrongBuy, models.LabelBuy, models.LabelWeakBuy:
		return models.CategoryBuy
	case models.LabelWeakSell, models.LabelSell, models.LabelStrongSell:
		return models.CategorySell
	case models.LabelBuyBlocked, models.LabelSellBlocked:
		return models.CategoryBlocked
	default:
		return models.CategoryHold
	}
}
