package receipt

import (
	"math"
	"strconv"
	"strings"
)

const (
	roundDollarPoints   = 50
	quarterPoints       = 25
	itemPairPoints      = 5
	oddDayPoints        = 6
	afternoonPoints     = 10
	descriptionMultiple = 3
	descriptionRate     = 0.2

	// Compared as strings, not parsed times.
	afternoonStart = "14:00"
	afternoonEnd   = "16:00"
)

// Points computes the reward points for a validated receipt.
//
// Amounts are parsed as float64 and checked with math.Mod, so a total scores
// the round-dollar and quarter bonuses exactly when its float64 value is an
// exact multiple of 1 and 0.25. An item whose ceil(price * 0.2) does not fit
// in an int earns math.MaxInt, and the sum saturates at math.MaxInt, so the
// result is never negative. Input that has not passed ValidateReceipt
// produces an unspecified score.
func Points(r Receipt) int {
	points := retailerPoints(r.Retailer)
	points = addPoints(points, totalPoints(r.Total))
	points = addPoints(points, (len(r.Items)/2)*itemPairPoints)
	for _, item := range r.Items {
		points = addPoints(points, descriptionPoints(item))
	}
	points = addPoints(points, purchaseDayPoints(r.PurchaseDate))
	points = addPoints(points, purchaseTimePoints(r.PurchaseTime))
	return points
}

// addPoints adds two non-negative scores, saturating at math.MaxInt.
func addPoints(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// retailerPoints counts every character of the name, spaces and punctuation
// included.
func retailerPoints(retailer string) int {
	return len(retailer)
}

func totalPoints(total string) int {
	amount := parseAmount(total)
	if math.IsInf(amount, 0) {
		return 0
	}

	points := 0
	if math.Mod(amount, 1) == 0 {
		points += roundDollarPoints
	}
	if math.Mod(amount, 0.25) == 0 {
		points += quarterPoints
	}
	return points
}

// descriptionPoints awards ceil(price * 0.2) when the trimmed description
// length is a multiple of three. An all-whitespace description trims to zero
// and qualifies. Results past math.MaxInt, +Inf included, are clamped.
func descriptionPoints(item Item) int {
	if len(strings.TrimSpace(item.ShortDescription))%descriptionMultiple != 0 {
		return 0
	}
	points := math.Ceil(parseAmount(item.Price) * descriptionRate)
	if points >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(points)
}

func purchaseDayPoints(date string) int {
	parts := strings.Split(date, "-")
	if len(parts) < 3 {
		return 0
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day%2 != 1 {
		return 0
	}
	return oddDayPoints
}

func purchaseTimePoints(purchaseTime string) int {
	if purchaseTime > afternoonStart && purchaseTime < afternoonEnd {
		return afternoonPoints
	}
	return 0
}

// parseAmount parses a decimal amount. Values too large for float64 come back
// as +Inf.
func parseAmount(s string) float64 {
	amount, _ := strconv.ParseFloat(s, 64)
	return amount
}
