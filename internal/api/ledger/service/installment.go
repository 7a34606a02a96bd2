package ledgerService

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Installment struct {
	Amount     float64
	OccurredAt time.Time
	Index      int
}

// SplitInstallments divides total into count dated installments one calendar
// month apart. Every installment but the last carries round(total/count, 2);
// the last carries total minus the running sum, so the installments always
// add back up to the original total with the rounding remainder absorbed at
// the end.
func SplitInstallments(total float64, count int, origin time.Time) []Installment {
	if count < 1 {
		return nil
	}

	totalDec := decimal.NewFromFloat(total)
	base := totalDec.DivRound(decimal.NewFromInt(int64(count)), 2)

	installments := make([]Installment, 0, count)
	running := decimal.Zero

	for i := 1; i <= count; i++ {
		amount := base
		if i == count {
			amount = totalDec.Sub(running).Round(2)
		}
		running = running.Add(amount)

		installments = append(installments, Installment{
			Amount:     amount.InexactFloat64(),
			OccurredAt: addMonths(origin, i-1),
			Index:      i,
		})
	}

	return installments
}

func installmentDescription(index, count int) string {
	return fmt.Sprintf("Parcela %d/%d", index, count)
}

// addMonths advances t by whole months keeping the day of month, clamped to
// the last valid day of the target month (Jan 31 + 1 month = Feb 28/29, not
// Mar 2 as time.AddDate would normalize it).
func addMonths(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}

	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, hour, minute, sec, t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
