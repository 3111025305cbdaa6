package repository

import "github.com/shopspring/decimal"

// averageRating is sum/count rounded to one decimal, matching the SQL ROUND(AVG(rating), 1)
func averageRating(sum, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))).Round(1)
}
