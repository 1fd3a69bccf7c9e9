package cooperative

import (
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
)

// RegisterModels makes every cooperative record available in the console
// with default behavior.
func RegisterModels(site *console.Site) error {
	for _, register := range []func(*console.Site) error{
		console.Register[domain.Member],
		console.Register[domain.Property],
		console.Register[domain.MeterReplacement],
		console.Register[domain.Tariff],
		console.Register[domain.TariffTier],
		console.Register[domain.Item],
		console.Register[domain.BillingPeriod],
		console.Register[domain.Invoice],
	} {
		if err := register(site); err != nil {
			return err
		}
	}
	return nil
}
